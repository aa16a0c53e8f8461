// Package auth provides the session middleware of the web application.
//
// Load resolves the session cookie to the signed-in profile and stores it in
// fiber.Locals for handlers and templates. It never rejects a request.
// RequireUser and RequireAdmin guard API routes and answer with the JSON
// error envelope: 401 for anonymous requests, 403 for signed-in profiles
// without the admin role.
//
// Usage:
//
//	sessions := authmiddleware.Sessions{CookieName: cfg.Webserver.Session.CookieName, DB: db}
//	app.Use(sessions.Load)
//	app.Get("/api/admin/discount-codes", authmiddleware.RequireAdmin, list)
package auth
