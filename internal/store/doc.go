// Package store defines the persistence contracts for users and terms, the
// errors implementations must return, and the transaction helper services use
// to group several store calls into one atomic unit.
package store
