// Package auth provides the credential primitives used by the account service
// and the access gate: HMAC-signed access tokens, bcrypt password hashing and
// numeric confirmation codes.
package auth
