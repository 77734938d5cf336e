// Package storage is the client's durable key/value store: the terminal
// counterpart of browser localStorage. Values are plain strings; a missing
// key is a normal state and is reported through the ok result, not an error.
//
// SQLiteStorage persists to a local SQLite file whose schema is managed by
// embedded goose migrations. MemoryStorage keeps everything in a map and is
// used by tests and by the ":memory:" storage path.
package storage
