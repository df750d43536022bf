package domain

// User represents the authenticated account holder.
type User struct {
	ID    int64
	Email string
	Name  string
}

// Credential is a bearer token plus the user it authenticates.
// It lives for the session and is destroyed on logout or on a 401.
type Credential struct {
	Token string
	User  User
}

// IsPresent reports whether the credential carries a usable token.
func (c Credential) IsPresent() bool {
	return c.Token != ""
}
