// Package domain contains the 2do entities: accounts, pending registrations
// and todos, together with their validation rules and the reminder interval
// vocabulary. It has no knowledge of storage or transport.
package domain
