package domain

// User is the backend account attached to a session. Field names follow the
// backend user serializer.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// DisplayName returns "First Last" when known, otherwise the username.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// LoginResult is the backend login response.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
