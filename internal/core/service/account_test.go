package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "taskboard/pkg/test"

	"taskboard/internal/adapter/database/sqlite/repository"
	"taskboard/internal/adapter/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/port"
	"taskboard/internal/core/service"
)

type AccountServiceTestSuite struct {
	suite.Suite
	Service port.AccountService
	repo    port.UserRepository
}

func (s *AccountServiceTestSuite) SetupTest() {
	db := InitTestDB()

	s.repo = repository.NewUserRepository(db)
	s.Service = service.NewAccountService(s.repo, validation.New(), nil)
}

func TestAccountServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) register(username, password, name string) {
	_, err := s.Service.Register(context.Background(), &request.RegisterRequest{
		Username: username,
		Password: password,
		Name:     name,
	})

	assert.NoError(s.T(), err)
}

func (s *AccountServiceTestSuite) TestRegister_Success() {
	user, err := s.Service.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "secret1",
		Name:     "Alice",
	})

	assert.NoError(s.T(), err)
	Expect(user.ID).To(BeNumerically(">", 0))
	Expect(user.Username).To(Equal("alice"))
	Expect(user.Name).To(Equal("Alice"))

	got, err := s.Service.Get(context.Background(), "alice")

	assert.NoError(s.T(), err)
	Expect(got.Username).To(Equal("alice"))
	Expect(got.Name).To(Equal("Alice"))
}

func (s *AccountServiceTestSuite) TestRegister_StoresHashNotPlaintext() {
	s.register("alice", "secret1", "Alice")

	stored, err := s.repo.GetByUsername(context.Background(), "alice")

	assert.NoError(s.T(), err)
	Expect(stored.Password).NotTo(Equal("secret1"))
	Expect(stored.Token).To(BeNil())
}

func (s *AccountServiceTestSuite) TestRegister_DuplicateUsername() {
	s.register("alice", "secret1", "Alice")

	_, err := s.Service.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Password: "other99",
		Name:     "Other",
	})

	Expect(err).To(MatchError(domain.ErrUsernameTaken))
}

func (s *AccountServiceTestSuite) TestRegister_ValidationFailure() {
	_, err := s.Service.Register(context.Background(), &request.RegisterRequest{
		Username: "",
		Password: "short",
		Name:     "",
	})

	domainErr, ok := domain.AsError(err)

	Expect(ok).To(BeTrue())
	Expect(domainErr.Status).To(Equal(400))
	Expect(domainErr.Code).To(Equal("VALIDATION_ERROR"))
	Expect(domainErr.Fields).NotTo(BeEmpty())
}

func (s *AccountServiceTestSuite) TestLogin_Success() {
	s.register("alice", "secret1", "Alice")

	resp, err := s.Service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})

	assert.NoError(s.T(), err)
	Expect(resp.ID).To(BeNumerically(">", 0))
	Expect(resp.Token).NotTo(BeEmpty())

	stored, _ := s.repo.GetByUsername(context.Background(), "alice")
	Expect(stored.Token).NotTo(BeNil())
	Expect(*stored.Token).To(Equal(resp.Token))
}

func (s *AccountServiceTestSuite) TestLogin_RotatesToken() {
	s.register("alice", "secret1", "Alice")

	first, err := s.Service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})
	assert.NoError(s.T(), err)

	second, err := s.Service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})
	assert.NoError(s.T(), err)

	Expect(second.Token).NotTo(Equal(first.Token))

	// Single active session: only the latest token is stored.
	stored, _ := s.repo.GetByUsername(context.Background(), "alice")
	Expect(*stored.Token).To(Equal(second.Token))
}

func (s *AccountServiceTestSuite) TestLogin_WrongPasswordAndUnknownUserIndistinguishable() {
	s.register("alice", "secret1", "Alice")

	_, wrongPassword := s.Service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "wrong1",
	})

	_, unknownUser := s.Service.Login(context.Background(), &request.LoginRequest{
		Username: "nobody",
		Password: "secret1",
	})

	Expect(wrongPassword).To(MatchError(domain.ErrInvalidCredentials))
	Expect(unknownUser).To(MatchError(domain.ErrInvalidCredentials))
	Expect(wrongPassword.Error()).To(Equal(unknownUser.Error()))
}

func (s *AccountServiceTestSuite) TestGet_NotFound() {
	_, err := s.Service.Get(context.Background(), "nobody")

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *AccountServiceTestSuite) TestGet_NeverReturnsPassword() {
	s.register("alice", "secret1", "Alice")

	got, err := s.Service.Get(context.Background(), "alice")

	assert.NoError(s.T(), err)
	Expect(got.ID).To(BeNumerically(">", 0))
	Expect(got.Username).To(Equal("alice"))
	Expect(got.Name).To(Equal("Alice"))
}

func (s *AccountServiceTestSuite) TestUpdate_NameOnlyKeepsPassword() {
	s.register("alice", "secret1", "Alice")

	before, _ := s.repo.GetByUsername(context.Background(), "alice")

	updated, err := s.Service.Update(context.Background(), &request.UpdateUserRequest{
		Username: "alice",
		Name:     "Alice B",
	})

	assert.NoError(s.T(), err)
	Expect(updated.Username).To(Equal("alice"))
	Expect(updated.Name).To(Equal("Alice B"))

	after, _ := s.repo.GetByUsername(context.Background(), "alice")
	Expect(after.Password).To(Equal(before.Password))
}

func (s *AccountServiceTestSuite) TestUpdate_PasswordOnlyKeepsName() {
	s.register("alice", "secret1", "Alice")

	before, _ := s.repo.GetByUsername(context.Background(), "alice")

	_, err := s.Service.Update(context.Background(), &request.UpdateUserRequest{
		Username: "alice",
		Password: "newsecret",
	})

	assert.NoError(s.T(), err)

	after, _ := s.repo.GetByUsername(context.Background(), "alice")
	Expect(after.Name).To(Equal("Alice"))
	Expect(after.Password).NotTo(Equal(before.Password))

	// The new password works for login, the old one does not.
	_, err = s.Service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "newsecret",
	})
	assert.NoError(s.T(), err)

	_, err = s.Service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})
	Expect(err).To(MatchError(domain.ErrInvalidCredentials))
}

func (s *AccountServiceTestSuite) TestUpdate_NotFound() {
	_, err := s.Service.Update(context.Background(), &request.UpdateUserRequest{
		Username: "nobody",
		Name:     "Nobody",
	})

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *AccountServiceTestSuite) TestLogout_NullsToken() {
	s.register("alice", "secret1", "Alice")

	_, err := s.Service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "secret1",
	})
	assert.NoError(s.T(), err)

	resp, err := s.Service.Logout(context.Background(), "alice")

	assert.NoError(s.T(), err)
	Expect(resp.Username).To(Equal("alice"))

	stored, _ := s.repo.GetByUsername(context.Background(), "alice")
	Expect(stored.Token).To(BeNil())
}

func (s *AccountServiceTestSuite) TestLogout_NotFound() {
	_, err := s.Service.Logout(context.Background(), "nobody")

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}
