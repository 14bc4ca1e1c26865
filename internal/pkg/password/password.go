package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates beyond 72 bytes; reject instead
const maxLen = 72

func Hash(plain string) (string, error) {
	if len(plain) > maxLen {
		return "", fmt.Errorf("password exceeds %d bytes", maxLen)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
