// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP concerns to the account and todo
// services: handlers read the authenticated principal from the request
// context once and pass it explicitly to every service call.
package api
