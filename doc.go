// Package main provides the entry point of the MyUNI server.
// It starts the Fiber web service that serves the bilingual JSON API of the
// platform (AI chat, blog comments, dynamic forms, newsletter, internship
// applications, discount codes, certificate emails and sign in) together
// with the server-rendered blog pages. Data is kept in MySQL or PostgreSQL
// through gorm and transactional email goes out over SMTP or AWS SES.
package main
