// Package oidc provides the OpenID Connect sign in flow.
//
// The flow includes:
//   - Login initiation with CSRF protection via a short lived state cookie
//   - Authorization callback handling with ID token verification
//   - Profile creation/update from the ID token claims
//   - Session creation and cookie management
//   - Logout with provider end session support
//
// Routes:
//
//	GET /auth/oidc/login    - redirect to the identity provider
//	GET /auth/oidc/callback - handle the provider callback
//	GET /auth/oidc/logout   - end the session and the provider session
package oidc
