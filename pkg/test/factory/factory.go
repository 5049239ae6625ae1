package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/core/domain"
)

// DefaultPassword is the plaintext behind every factory-built user unless a
// Password override is given.
const DefaultPassword = "12345678"

func NewUser(customData ...map[string]any) domain.User {
	instance := fab.New(domain.User{})

	hasPassword := false

	for _, data := range customData {
		if _, exists := data["Password"]; exists {
			hasPassword = true
			break
		}
	}

	if !hasPassword {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), 10)

		customData = append(customData, map[string]any{
			"Password": string(hashed),
		})
	}

	return instance.Build(customData...)
}

func NewTask(customData ...map[string]any) domain.Task {
	instance := fab.New(domain.Task{})

	return instance.Build(customData...)
}
