package model

import (
	"time"

	"xhs_spider/pkg/model"
)

// 任务状态
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// 任务类型，对应各个爬取入口
const (
	KindNote       = "note"
	KindNoteBatch  = "note_batch"
	KindUserNotes  = "user_notes"
	KindSearch     = "search"
	KindComments   = "comments"
	KindUsersBatch = "users_batch"
)

// Task 一次爬取任务的归档记录
type Task struct {
	model.BaseModel
	Kind           string     `gorm:"type:varchar(32);index" json:"kind"`
	Params         string     `gorm:"type:jsonb" json:"params"`
	Status         string     `gorm:"type:varchar(16);index" json:"status"`
	Message        string     `gorm:"type:text" json:"message"`
	NoteCount      int        `json:"note_count"`
	ProcessedUsers int        `json:"processed_users"`
	ExcelPath      string     `gorm:"type:varchar(512)" json:"excel_path"`
	OSSKey         string     `gorm:"type:varchar(512)" json:"oss_key"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
}

func (Task) TableName() string {
	return "spider_tasks"
}
