package domain

// UserRole is the role a person plays in the business.
type UserRole string

const (
	RoleCEO      UserRole = "CEO"
	RoleManager  UserRole = "MANAGER"
	RoleWorker   UserRole = "WORKER"
	RoleDriver   UserRole = "DRIVER"
	RoleGardener UserRole = "GARDENER"
	RoleClient   UserRole = "CLIENT"
	RoleSupplier UserRole = "SUPPLIER"
)

// User represents a person known to the system. Every user is linked to a
// person ledger account that carries their balance, debt and credit advance.
type User struct {
	UserID       string   `json:"userID"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AccountID    string   `json:"accountID"` // person ledger account
	SectionID    string   `json:"sectionID,omitempty"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}

// AutoVerifies reports whether entries created by this user skip the NEW
// status. CEO-created records are trusted immediately.
func (u User) AutoVerifies() bool {
	return u.Role == RoleCEO
}
