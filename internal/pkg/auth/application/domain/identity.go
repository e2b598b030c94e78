package auth

// Identity is the authenticated caller, resolved from a bearer token.
type Identity struct {
	UserID   string
	Username string
	Email    string
}

func (i Identity) IsZero() bool {
	return i.UserID == ""
}
