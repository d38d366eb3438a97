package model

// User is the authenticated user's profile.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Picture   *string `json:"picture"`
}

// PatchUser carries partial profile updates. Nil fields are left
// untouched by the backend.
type PatchUser struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Picture   *string `json:"picture,omitempty"`
}

// UserRegistration is the payload for registering a new user. Sent
// unauthenticated.
type UserRegistration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
