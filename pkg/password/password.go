package password

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooLong is returned by Hash for passwords over 72 bytes.
var ErrTooLong = bcrypt.ErrPasswordTooLong

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// Hash returns the bcrypt hash of plain.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches hash.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// VerifyDummy spends the same time as a real Verify so lookups of unknown
// accounts are not distinguishable by latency.
func VerifyDummy(plain string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}
