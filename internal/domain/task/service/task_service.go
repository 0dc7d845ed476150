package service

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"xhs_spider/internal/domain/task/model"
	"xhs_spider/internal/domain/task/repository"
	"xhs_spider/pkg/logger"
)

var ErrTaskNotFound = errors.New("任务不存在")

type TaskService interface {
	// Begin 创建一条运行中的任务记录，返回任务 id，失败时返回空串
	Begin(kind string, params interface{}) string
	// Finish 补写任务结果，runErr 非空时状态为 failed
	Finish(taskID string, noteCount, processedUsers int, excelPath, ossKey string, runErr error)
	GetTask(id string) (*model.Task, error)
	GetTaskList(offset, limit int) ([]model.Task, int64, error)
}

type taskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Begin(kind string, params interface{}) string {
	raw, err := json.Marshal(params)
	if err != nil {
		raw = []byte("{}")
	}
	task := &model.Task{
		Kind:      kind,
		Params:    string(raw),
		Status:    model.StatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.repo.Create(task); err != nil {
		// 归档失败不阻塞爬取本身
		logger.Log.Warn("创建任务记录失败", zap.String("kind", kind), zap.Error(err))
		return ""
	}
	return task.ID
}

func (s *taskService) Finish(taskID string, noteCount, processedUsers int, excelPath, ossKey string, runErr error) {
	if taskID == "" {
		return
	}
	task, err := s.repo.GetByID(taskID)
	if err != nil {
		logger.Log.Warn("读取任务记录失败", zap.String("task_id", taskID), zap.Error(err))
		return
	}
	now := time.Now()
	task.NoteCount = noteCount
	task.ProcessedUsers = processedUsers
	task.ExcelPath = excelPath
	task.OSSKey = ossKey
	task.FinishedAt = &now
	if runErr != nil {
		task.Status = model.StatusFailed
		task.Message = runErr.Error()
	} else {
		task.Status = model.StatusSuccess
	}
	if err := s.repo.Update(task); err != nil {
		logger.Log.Warn("更新任务记录失败", zap.String("task_id", taskID), zap.Error(err))
	}
}

func (s *taskService) GetTask(id string) (*model.Task, error) {
	task, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetTaskList(offset, limit int) ([]model.Task, int64, error) {
	return s.repo.GetList(offset, limit)
}
