package util

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the account data was written with.
const hashCost = 10

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)

	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func ComparePassword(password, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}
