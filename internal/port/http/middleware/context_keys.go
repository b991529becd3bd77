package middleware

// ContextKey is a private key type so request-context values cannot collide
// with other packages.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's ID; it doubles as the cart
	// session ID.
	UserIDCtxKey = ContextKey("user_id")

	// UserRoleCtxKey holds the authenticated user's role ("customer" or
	// "admin").
	UserRoleCtxKey = ContextKey("user_role")
)

const RoleAdmin = "admin"
