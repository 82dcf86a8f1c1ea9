package utils

import "golang.org/x/crypto/bcrypt"

// HashPassphrase returns the bcrypt hash of a session passphrase using the
// given cost.  A cost outside bcrypt's range falls back to the default.
func HashPassphrase(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassphrase safely compares a bcrypt hash and a plain passphrase.
func VerifyPassphrase(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
