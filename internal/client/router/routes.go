package router

// Role names known to the clinic API.
const (
	RoleAdmin            = "Admin"
	RoleReceptionist     = "Receptionist"
	RoleNurse            = "Nurse"
	RoleDoctor           = "Doctor"
	RoleLabTechnician    = "LabTechnician"
	RoleInventoryManager = "InventoryManager"
	RoleHR               = "HR"
)

var (
	inventoryRoles = []string{RoleAdmin, RoleInventoryManager}
	staffRoles     = []string{RoleAdmin, RoleHR}
)

// DefaultRoutes returns the clinic route table. The catch-all is last.
func DefaultRoutes() []Route {
	return []Route{
		{Path: LoginPath, Name: "Login", Screen: "Login"},
		{Path: HomePath, Name: "Home", Redirect: DashboardPath, RequiresAuth: true},
		{Path: DashboardPath, Name: "DashboardRouter", Screen: "Dashboard", RequiresAuth: true},

		{Path: "/admin", Name: "AdminDashboard", Screen: "Admin", RequiresAuth: true,
			AllowedRoles: []string{RoleAdmin}},
		{Path: "/receptionist", Name: "ReceptionistDashboard", Screen: "Receptionist", RequiresAuth: true,
			AllowedRoles: []string{RoleReceptionist}},
		{Path: "/nurse", Name: "NurseDashboard", Screen: "Nurse", RequiresAuth: true,
			AllowedRoles: []string{RoleNurse}},
		{Path: "/doctor", Name: "DoctorDashboard", Screen: "Doctor", RequiresAuth: true,
			AllowedRoles: []string{RoleDoctor}},
		{Path: "/lab-tech", Name: "LabTechnicianDashboard", Screen: "Lab Technician", RequiresAuth: true,
			AllowedRoles: []string{RoleLabTechnician}},

		{Path: "/inventory", Name: "InventoryDashboard", Screen: "Inventory", Resource: "/inventory/items",
			RequiresAuth: true, AllowedRoles: inventoryRoles},
		{Path: "/inventory/items/add", Name: "AddInventoryItem", Screen: "Add Inventory Item",
			RequiresAuth: true, AllowedRoles: inventoryRoles},
		{Path: "/inventory/items/edit/{id}", Name: "EditInventoryItem", Screen: "Edit Inventory Item",
			Resource: "/inventory/items/{id}", RequiresAuth: true, AllowedRoles: inventoryRoles},
		{Path: "/inventory/transactions", Name: "StockTransactionsLog", Screen: "Stock Transactions",
			Resource: "/inventory/transactions", RequiresAuth: true, AllowedRoles: inventoryRoles},

		{Path: "/users", Name: "UserManagement", Screen: "User Management", Resource: "/users",
			RequiresAuth: true, AllowedRoles: staffRoles},
		{Path: "/clinic-settings", Name: "ClinicSettings", Screen: "Clinic Settings", Resource: "/clinic-settings",
			RequiresAuth: true, AllowedRoles: staffRoles},

		{Path: "/patients", Name: "PatientsList", Screen: "Patients", Resource: "/patients", RequiresAuth: true,
			AllowedRoles: []string{RoleAdmin, RoleReceptionist, RoleDoctor, RoleNurse, RoleLabTechnician}},
		{Path: "/patients/{patientId}/medical-history", Name: "patient-history", Screen: "Medical History",
			Resource: "/patients/{patientId}/medical-history", RequiresAuth: true,
			AllowedRoles: []string{RoleAdmin, RoleDoctor, RoleNurse}},
		{Path: "/patients/{patientId}/visits", Name: "clinic-visits", Screen: "Clinic Visits",
			Resource: "/patients/{patientId}/visits", RequiresAuth: true,
			AllowedRoles: []string{RoleAdmin, RoleReceptionist, RoleDoctor, RoleNurse}},
		{Path: "/patients/{patientId}/triage", Name: "triage-records", Screen: "Triage Records",
			Resource: "/patients/{patientId}/triage", RequiresAuth: true,
			AllowedRoles: []string{RoleAdmin, RoleNurse}},
		{Path: "/patients/{patientId}/lab-results", Name: "lab-results", Screen: "Lab Results",
			Resource: "/patients/{patientId}/lab-results", RequiresAuth: true,
			AllowedRoles: []string{RoleAdmin, RoleDoctor, RoleNurse, RoleLabTechnician}},
		{Path: "/patients/{patientId}/documents", Name: "patient-documents", Screen: "Patient Documents",
			Resource: "/patients/{patientId}/documents", RequiresAuth: true,
			AllowedRoles: []string{RoleAdmin, RoleReceptionist}},

		{Path: CatchAllPath, Name: "NotFound"},
	}
}
