// Package store defines the persistence interfaces for accounts, pending
// registrations and todos, the sentinel errors implementations must return,
// and the transaction helpers the services use to group writes.
package store
