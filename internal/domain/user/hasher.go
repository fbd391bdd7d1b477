package user

// PasswordHasher hashes and verifies plain-text passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}
