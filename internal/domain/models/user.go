package models

// User roles as stored in users.user_type.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a tenant or admin account. Password holds the bcrypt
// hash and is never serialized.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	UserType string `json:"user_type"`
}

// UserPatch supports partial updates via field presence.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	UserType *string `json:"user_type"`
}
