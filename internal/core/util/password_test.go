package util_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"taskboard/internal/core/util"
)

func TestHashPassword(t *testing.T) {
	RegisterTestingT(t)

	hashed, err := util.HashPassword("secret1")

	Expect(err).To(BeNil())
	Expect(hashed).NotTo(BeEmpty())
	Expect(hashed).NotTo(Equal("secret1"))

	Expect(util.ComparePassword("secret1", hashed)).To(Succeed())
	Expect(util.ComparePassword("wrong", hashed)).NotTo(Succeed())
}

func TestHashPasswordNotDeterministic(t *testing.T) {
	RegisterTestingT(t)

	first, _ := util.HashPassword("secret1")
	second, _ := util.HashPassword("secret1")

	Expect(first).NotTo(Equal(second))
}

func TestNewSessionToken(t *testing.T) {
	RegisterTestingT(t)

	first := util.NewSessionToken()
	second := util.NewSessionToken()

	Expect(first).NotTo(BeEmpty())
	Expect(first).NotTo(Equal(second))
}
