package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"xhs_spider/internal/domain/task/model"
	"xhs_spider/pkg/logger"
)

func init() {
	logger.Init(true)
}

// MockTaskRepository is a mock of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(task *model.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(task *model.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(id string) (*model.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetList(offset, limit int) ([]model.Task, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]model.Task), args.Get(1).(int64), args.Error(2)
}

func TestBeginAndFinish(t *testing.T) {
	t.Run("success run", func(t *testing.T) {
		repo := new(MockTaskRepository)
		svc := NewTaskService(repo)

		repo.On("Create", mock.AnythingOfType("*model.Task")).
			Run(func(args mock.Arguments) {
				args.Get(0).(*model.Task).ID = "task-1"
			}).Return(nil)

		taskID := svc.Begin(model.KindNoteBatch, map[string]interface{}{"n": 1})
		assert.Equal(t, "task-1", taskID)

		created := &model.Task{Status: model.StatusRunning}
		created.ID = "task-1"
		repo.On("GetByID", "task-1").Return(created, nil)
		repo.On("Update", mock.AnythingOfType("*model.Task")).Return(nil)

		svc.Finish(taskID, 3, 2, "/excel/a.xlsx", "archive/a.xlsx", nil)

		assert.Equal(t, model.StatusSuccess, created.Status)
		assert.Equal(t, 3, created.NoteCount)
		assert.Equal(t, 2, created.ProcessedUsers)
		require.NotNil(t, created.FinishedAt)
		repo.AssertExpectations(t)
	})

	t.Run("failed run records message", func(t *testing.T) {
		repo := new(MockTaskRepository)
		svc := NewTaskService(repo)

		created := &model.Task{Status: model.StatusRunning}
		created.ID = "task-2"
		repo.On("GetByID", "task-2").Return(created, nil)
		repo.On("Update", mock.AnythingOfType("*model.Task")).Return(nil)

		svc.Finish("task-2", 0, 0, "", "", errors.New("上游超时"))

		assert.Equal(t, model.StatusFailed, created.Status)
		assert.Equal(t, "上游超时", created.Message)
	})

	t.Run("create failure returns empty id", func(t *testing.T) {
		repo := new(MockTaskRepository)
		svc := NewTaskService(repo)

		repo.On("Create", mock.Anything).Return(errors.New("db down"))

		assert.Empty(t, svc.Begin(model.KindSearch, nil))
	})

	t.Run("empty id is a no-op", func(t *testing.T) {
		repo := new(MockTaskRepository)
		svc := NewTaskService(repo)

		svc.Finish("", 0, 0, "", "", nil)
		repo.AssertNotCalled(t, "GetByID")
	})
}

func TestGetTask(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := NewTaskService(repo)

	repo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetTask("missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
