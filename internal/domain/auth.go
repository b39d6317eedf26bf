package domain

// Identity is what a verified credential tells us about the caller.
type Identity struct {
	UserID string
	Email  string
	Role   UserRole
}
