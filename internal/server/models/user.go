// Package models defines the data records persisted by the service.
package models

// User is a system account. Accounts are provisioned externally; the
// service only reads them to verify logins and resolve token subjects.
type User struct {
	// Email is the unique identity the token subject refers to.
	Email string
	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string
}
