// Package service contains the application use cases. It orchestrates the
// domain entities and the store interfaces to implement account management
// and todo operations.
//
// Every operation takes the caller as an explicit Principal and reports
// failures as *Error values carrying a Kind. The API layer maps the Kind to an
// HTTP status and shows only Error.Message to clients.
package service
