package ports

// PasswordHasher hashes and verifies passwords with a deliberately slow
// one-way function.
type PasswordHasher interface {
	// Hash returns the encoded hash of a plaintext password.
	Hash(password string) (string, error)

	// Compare checks a plaintext password against an encoded hash.
	// Returns nil on match. The comparison is constant-time-safe.
	Compare(hash, password string) error

	// CompareDummy burns one comparison against a fixed hash, so a failed
	// account lookup costs the same as a failed password check.
	CompareDummy(password string)
}

// TokenManager issues and verifies stateless session tokens.
type TokenManager interface {
	// Issue signs a token encoding the user identity with a fixed
	// expiration window.
	Issue(userID int64) (string, error)

	// Verify checks signature and expiration and returns the encoded
	// user identity. Failures are unauthorized domain errors.
	Verify(token string) (int64, error)
}
