// Package models defines the persisted row types for the four ACL relations.
package models

// User is a row of the "user" relation. Login is the primary key and never
// changes after creation; PasswordHash is the PHC-encoded argon2id hash,
// the plaintext is never stored.
type User struct {
	Login        string
	PasswordHash string
	Name         string
	Email        string
}
