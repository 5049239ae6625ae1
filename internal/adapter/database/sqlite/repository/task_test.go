package repository_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "taskboard/pkg/test"

	"taskboard/internal/adapter/database/sqlite/repository"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
	"taskboard/pkg/test/factory"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	TaskRepo port.TaskRepository
	UserRepo port.UserRepository
	owner    domain.User
}

func (s *TaskRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.TaskRepo = repository.NewTaskRepository(db)
	s.UserRepo = repository.NewUserRepository(db)

	var err error
	s.owner, err = s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{"Username": "owner"}))
	assert.NoError(s.T(), err)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskRepositoryTestSuite))
}

func (s *TaskRepositoryTestSuite) seed(title, description string, completed bool) domain.Task {
	now := time.Now()

	task, err := s.TaskRepo.Create(context.Background(), domain.Task{
		UserID:      s.owner.ID,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	assert.NoError(s.T(), err)

	return task
}

func (s *TaskRepositoryTestSuite) TestRepository_Search_Empty() {
	tasks, err := s.TaskRepo.Search(context.Background(), domain.TaskFilter{
		UserID: s.owner.ID,
		Limit:  10,
	})

	assert.NoError(s.T(), err)
	Expect(tasks).To(BeEmpty())
}

func (s *TaskRepositoryTestSuite) TestRepository_Search_WindowAndCount() {
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		s.seed(title, "", false)
	}

	tasks, err := s.TaskRepo.Search(context.Background(), domain.TaskFilter{
		UserID: s.owner.ID,
		Limit:  2,
		Offset: 2,
	})

	assert.NoError(s.T(), err)
	Expect(tasks).To(HaveLen(2))

	count, err := s.TaskRepo.Count(context.Background(), domain.TaskFilter{
		UserID: s.owner.ID,
		Limit:  2,
		Offset: 2,
	})

	assert.NoError(s.T(), err)
	Expect(count).To(Equal(int64(5)))
}

func (s *TaskRepositoryTestSuite) TestRepository_Search_SubstringFilters() {
	s.seed("buy groceries", "milk and eggs", false)
	s.seed("write report", "quarterly numbers", false)

	byTitle, err := s.TaskRepo.Search(context.Background(), domain.TaskFilter{
		UserID: s.owner.ID,
		Title:  "report",
		Limit:  10,
	})

	assert.NoError(s.T(), err)
	Expect(byTitle).To(HaveLen(1))
	Expect(byTitle[0].Title).To(Equal("write report"))

	byDescription, err := s.TaskRepo.Search(context.Background(), domain.TaskFilter{
		UserID:      s.owner.ID,
		Description: "milk",
		Limit:       10,
	})

	assert.NoError(s.T(), err)
	Expect(byDescription).To(HaveLen(1))
	Expect(byDescription[0].Title).To(Equal("buy groceries"))
}

func (s *TaskRepositoryTestSuite) TestRepository_Search_CompletedEquality() {
	s.seed("done", "", true)
	s.seed("pending", "", false)

	completed := false

	tasks, err := s.TaskRepo.Search(context.Background(), domain.TaskFilter{
		UserID:    s.owner.ID,
		Completed: &completed,
		Limit:     10,
	})

	assert.NoError(s.T(), err)
	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Title).To(Equal("pending"))
}

func (s *TaskRepositoryTestSuite) TestRepository_Search_OtherUsersInvisible() {
	other, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{"Username": "other"}))
	assert.NoError(s.T(), err)

	now := time.Now()
	_, err = s.TaskRepo.Create(context.Background(), domain.Task{
		UserID:    other.ID,
		Title:     "not yours",
		CreatedAt: now,
		UpdatedAt: now,
	})
	assert.NoError(s.T(), err)

	tasks, err := s.TaskRepo.Search(context.Background(), domain.TaskFilter{
		UserID: s.owner.ID,
		Limit:  10,
	})

	assert.NoError(s.T(), err)
	Expect(tasks).To(BeEmpty())
}
