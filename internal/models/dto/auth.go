package dto

// AuthRequest is the body of both signup and signin.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires a well-formed email and a non-empty password.
func (r AuthRequest) Validate() error {
	var v validator
	v.email("email", r.Email)
	if r.Password == "" {
		v.fail("password", "must not be empty")
	}
	return v.err()
}

// TokenResponse carries the bearer token issued by signup and signin.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
