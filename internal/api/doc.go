// Package api holds the HTTP handlers for terms, reviews and user accounts.
// Handlers decode and validate requests, call the services and map their
// errors to status codes and safe messages.
package api
