package auth

import "errors"

var (
	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured OIDC provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrOIDCDisabled is returned when OIDC is disabled via configuration.
	ErrOIDCDisabled = errors.New("oidc authentication is disabled")

	// ErrNoSubject is returned when the ID token has no sub claim.
	ErrNoSubject = errors.New("id token has no subject")

	// ErrAccountDisabled is returned when attempting to authenticate a disabled account.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInvalidCredentials is returned when the email or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
