package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"xhs_spider/internal/domain/task/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestTaskRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "spider_tasks"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	task := &model.Task{
		Kind:      model.KindNoteBatch,
		Params:    `{"note_urls":["u"]}`,
		Status:    model.StatusRunning,
		StartedAt: time.Now(),
	}
	err := repo.Create(task)

	require.NoError(t, err)
	// uuid 由 BeforeCreate 钩子生成
	assert.NotEmpty(t, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "kind", "status"}).
			AddRow("task-1", model.KindSearch, model.StatusSuccess)
		mock.ExpectQuery(`SELECT \* FROM "spider_tasks"`).
			WithArgs("task-1", 1).
			WillReturnRows(rows)

		task, err := repo.GetByID("task-1")

		require.NoError(t, err)
		assert.Equal(t, model.KindSearch, task.Kind)
		assert.Equal(t, model.StatusSuccess, task.Status)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "spider_tasks"`).
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID("missing")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestTaskRepositoryGetList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "spider_tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "spider_tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind"}).
			AddRow("t1", model.KindNote).
			AddRow("t2", model.KindComments))

	tasks, total, err := repo.GetList(0, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
