package repository_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "taskboard/pkg/test"

	"taskboard/internal/adapter/database/sqlite/repository"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
	"taskboard/pkg/test/factory"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	Repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.Repo = repository.NewUserRepository(db)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestRepository_Create_Success() {
	user, err := s.Repo.Create(context.Background(), factory.NewUser(map[string]any{
		"Username": "alice",
		"Name":     "Alice",
		"Token":    (*string)(nil),
	}))

	assert.NoError(s.T(), err)
	Expect(user.ID).To(BeNumerically(">", 0))

	saved, err := s.Repo.GetByUsername(context.Background(), "alice")

	assert.NoError(s.T(), err)
	Expect(saved.ID).To(Equal(user.ID))
	Expect(saved.Name).To(Equal("Alice"))
	Expect(saved.Token).To(BeNil())
}

func (s *UserRepositoryTestSuite) TestRepository_Create_UniqueViolation() {
	_, err := s.Repo.Create(context.Background(), factory.NewUser(map[string]any{"Username": "alice"}))
	assert.NoError(s.T(), err)

	// The unique index catches the duplicate even when the count check is
	// bypassed entirely.
	_, err = s.Repo.Create(context.Background(), factory.NewUser(map[string]any{"Username": "alice"}))

	Expect(err).To(MatchError(domain.ErrUsernameTaken))
}

func (s *UserRepositoryTestSuite) TestRepository_CountByUsername() {
	count, err := s.Repo.CountByUsername(context.Background(), "alice")

	assert.NoError(s.T(), err)
	Expect(count).To(Equal(int64(0)))

	_, err = s.Repo.Create(context.Background(), factory.NewUser(map[string]any{"Username": "alice"}))
	assert.NoError(s.T(), err)

	count, err = s.Repo.CountByUsername(context.Background(), "alice")

	assert.NoError(s.T(), err)
	Expect(count).To(Equal(int64(1)))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByUsername_NotFound() {
	_, err := s.Repo.GetByUsername(context.Background(), "nobody")

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdateToken_RoundTrip() {
	_, err := s.Repo.Create(context.Background(), factory.NewUser(map[string]any{
		"Username": "alice",
		"Token":    (*string)(nil),
	}))
	assert.NoError(s.T(), err)

	token := "opaque-token"

	err = s.Repo.UpdateToken(context.Background(), "alice", &token)
	assert.NoError(s.T(), err)

	byToken, err := s.Repo.GetByToken(context.Background(), token)

	assert.NoError(s.T(), err)
	Expect(byToken.Username).To(Equal("alice"))

	err = s.Repo.UpdateToken(context.Background(), "alice", nil)
	assert.NoError(s.T(), err)

	_, err = s.Repo.GetByToken(context.Background(), token)
	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdateToken_NotFound() {
	token := "opaque-token"

	err := s.Repo.UpdateToken(context.Background(), "nobody", &token)

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdateByUsername_PartialPatch() {
	created, err := s.Repo.Create(context.Background(), factory.NewUser(map[string]any{
		"Username": "alice",
		"Name":     "Alice",
	}))
	assert.NoError(s.T(), err)

	name := "Alice B"

	updated, err := s.Repo.UpdateByUsername(context.Background(), "alice", domain.UserPatch{Name: &name})

	assert.NoError(s.T(), err)
	Expect(updated.Name).To(Equal("Alice B"))
	Expect(updated.Password).To(Equal(created.Password))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdateByUsername_EmptyPatch() {
	_, err := s.Repo.Create(context.Background(), factory.NewUser(map[string]any{
		"Username": "alice",
		"Name":     "Alice",
	}))
	assert.NoError(s.T(), err)

	updated, err := s.Repo.UpdateByUsername(context.Background(), "alice", domain.UserPatch{})

	assert.NoError(s.T(), err)
	Expect(updated.Name).To(Equal("Alice"))
}
