package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "pos:checkout"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Point of sale
	{Code: "pos:checkout", Name: "Process Checkout"},
	{Code: "pos:draft", Name: "Save Draft Transaction"},
	// Transaction history
	{Code: "transaction:view", Name: "View Own Transactions"},
	{Code: "transaction:view_all", Name: "View All Transactions"},
	// Product management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	{Code: "product:adjust_stock", Name: "Adjust Product Stock"},
	// Customer management
	{Code: "customer:view", Name: "View Customer"},
	{Code: "customer:create", Name: "Create Customer"},
	{Code: "customer:update", Name: "Update Customer"},
	{Code: "customer:delete", Name: "Delete Customer"},
	// Reviews
	{Code: "review:create", Name: "Write Review"},
	{Code: "review:moderate", Name: "Moderate Reviews"},
	// Reports & dashboard
	{Code: "report:view", Name: "View Reports"},
	{Code: "dashboard:view", Name: "View Dashboard"},
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
}

// RoleDefaultPrivileges maps each seeded role to the privilege codes it
// starts with. ADMIN is handled separately and gets everything.
var RoleDefaultPrivileges = map[string][]string{
	RoleManager: {
		"transaction:view", "transaction:view_all",
		"product:view", "product:create", "product:update", "product:delete", "product:adjust_stock",
		"customer:view", "customer:create", "customer:update", "customer:delete",
		"review:moderate",
		"report:view", "dashboard:view",
	},
	RoleKasir: {
		"pos:checkout", "pos:draft",
		"transaction:view",
		"product:view",
		"customer:view", "customer:create",
		"dashboard:view",
	},
	RoleUser: {
		"product:view",
		"review:create",
	},
}
