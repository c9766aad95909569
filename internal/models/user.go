package models

// User is an account. Secret holds the stored form produced by the
// configured secret policy, never necessarily the raw password.
type User struct {
	Identity string
	Secret   []byte
}
