package dto

// AuthResult is returned by every authentication flow that mints tokens.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}
