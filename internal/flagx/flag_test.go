package flagx

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "https://api.local", "-x", "1"},
			allowed: []string{"-a"},
			want:    []string{"-a", "https://api.local"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=alt.json", "-a", "x"},
			allowed: []string{"--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next token looks like a flag",
			args:    []string{"-c", "-l", "debug"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "order preserved",
			args:    []string{"-i", "5", "-a", "u", "-t", "3"},
			allowed: []string{"-a", "-i", "-t"},
			want:    []string{"-i", "5", "-a", "u", "-t", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")

	assert.Equal(t, "a.json", ConfigPath([]string{"-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-a", "x", "-config", "b.json"}))
	assert.Equal(t, "c.json", ConfigPath([]string{"-config=c.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", "x"}))
}

func TestConfigPath_EnvFallback(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/etc/clinicdesk.json")

	assert.Equal(t, "/etc/clinicdesk.json", ConfigPath(nil))
	assert.Equal(t, "flag.json", ConfigPath([]string{"-c", "flag.json"}))
}

func TestConfigPath_MissingValueIsSilent(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/etc/clinicdesk.json")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	oldStderr := os.Stderr
	os.Stderr = w
	got := ConfigPath([]string{"-c"})
	os.Stderr = oldStderr
	require.NoError(t, w.Close())

	written, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, "/etc/clinicdesk.json", got)
	assert.Empty(t, written)
}
