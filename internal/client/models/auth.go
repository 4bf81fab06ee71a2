package models

// LoginRequest is the body of auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what auth/login returns on success.
type LoginResponse struct {
	Token string       `json:"token"`
	User  IdentityUser `json:"user"`
}

// IdentityUser is the user part of a login response.
type IdentityUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RegisterRequest is the body of auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Identity is the account created by a registration.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PrincipalFrom builds the persisted principal out of a login response.
func PrincipalFrom(resp *LoginResponse) *Principal {
	return &Principal{
		ID:       resp.User.ID,
		Email:    resp.User.Email,
		Username: resp.User.Email,
		Role:     resp.User.Role,
		Token:    resp.Token,
	}
}
