// Package auth authenticates visitors of the platform.
//
// Two sources are supported:
//   - OpenID Connect through the external identity provider. Profiles are
//     created on first sign-in and refreshed from the ID token claims on every
//     later sign-in. A configurable claim grants the admin role.
//   - Local admin accounts with Argon2id hashed passwords, for operating the
//     platform without the identity provider.
//
// Authorization is role based: a profile is either a user or an admin. The
// policy helpers in this package decide what a profile may do with a resource;
// the fiber middleware in internal/web/middleware/auth enforces them per route.
//
// Example usage:
//
//	provider, err := auth.NewOIDCProvider(ctx, &auth.OIDCConfig{...}, db)
//	url := provider.GetAuthURL(state)
//	p, idToken, err := provider.HandleCallback(ctx, code)
//
//	local := auth.NewLocalProvider(db)
//	p, err := local.Authenticate(email, password)
package auth
