package sammelband

// TokenPurpose scopes an emailed token to the action it authorizes.
type TokenPurpose string

// TokenPurpose constants.
const (
	TokenVerify TokenPurpose = "verify"
	TokenReset  TokenPurpose = "reset"
)

// TokenService issues and checks the signed tokens sent by email.
type TokenService interface {
	// Encode returns a token binding email to purpose.
	Encode(email string, purpose TokenPurpose) (string, error)

	// Decode returns the email bound to token.
	// Returns EUNAUTHORIZED if the token is invalid, expired or was issued
	// for a different purpose.
	Decode(token string, purpose TokenPurpose) (string, error)
}
