package entity

// Password is a plaintext credential. It exists only in memory for the
// duration of a hash or compare operation and must never be persisted.
// The two credential types are distinct on purpose: the compiler rejects
// passing a plaintext value where a hash is expected, and vice versa.
type Password string

// String masks the plaintext so accidental formatting or logging of a
// Password value never exposes the credential.
func (Password) String() string {
	return "[redacted]"
}

// PasswordHash is a salted, irreversible digest of a Password.
type PasswordHash string
