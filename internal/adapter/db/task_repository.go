package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"planloop/internal/core/domain"
	"planloop/internal/core/ports"
)

// Due dates travel as YYYY-MM-DD strings in both directions so the
// calendar day never shifts with the server or session timezone.
const loadAllQuery = `
SELECT
  id,
  title,
  DATE_FORMAT(due_date, '%Y-%m-%d') AS due_date,
  completed,
  subtasks,
  tags,
  recurrence,
  custom_interval,
  custom_unit,
  series_id,
  is_last_instance,
  auto_renew,
  created_at,
  updated_at
FROM tasks
ORDER BY due_date IS NULL, due_date, created_at;
`

const upsertTaskQuery = `
INSERT INTO tasks (
  id, title, due_date, completed, subtasks, tags, recurrence,
  custom_interval, custom_unit, series_id, is_last_instance, auto_renew,
  created_at, updated_at
) VALUES (
  :id, :title, :due_date, :completed, :subtasks, :tags, :recurrence,
  :custom_interval, :custom_unit, :series_id, :is_last_instance, :auto_renew,
  :created_at, :updated_at
)
ON DUPLICATE KEY UPDATE
  title = VALUES(title),
  due_date = VALUES(due_date),
  completed = VALUES(completed),
  subtasks = VALUES(subtasks),
  tags = VALUES(tags),
  recurrence = VALUES(recurrence),
  custom_interval = VALUES(custom_interval),
  custom_unit = VALUES(custom_unit),
  series_id = VALUES(series_id),
  is_last_instance = VALUES(is_last_instance),
  auto_renew = VALUES(auto_renew),
  updated_at = VALUES(updated_at);
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	DueDate        sql.NullString `db:"due_date"`
	Completed      bool           `db:"completed"`
	Subtasks       []byte         `db:"subtasks"`
	Tags           []byte         `db:"tags"`
	Recurrence     string         `db:"recurrence"`
	CustomInterval int            `db:"custom_interval"`
	CustomUnit     sql.NullString `db:"custom_unit"`
	SeriesID       sql.NullString `db:"series_id"`
	IsLastInstance bool           `db:"is_last_instance"`
	AutoRenew      bool           `db:"auto_renew"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type subtaskDoc struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

var _ ports.TaskStore = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) LoadAll(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, loadAllQuery); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// SaveAll upserts the given tasks. Empty input is a no-op and is never
// interpreted as "delete everything".
func (r *TaskRepository) SaveAll(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	for _, task := range tasks {
		row, err := mapDomainTaskToRow(task)
		if err != nil {
			return err
		}
		if _, err := r.db.NamedExecContext(ctx, upsertTaskQuery, row); err != nil {
			return fmt.Errorf("upsert task %s: %w", task.ID, err)
		}
	}
	return nil
}

func (r *TaskRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM tasks WHERE id IN (?);", ids)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	return err
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:             row.ID,
		Title:          row.Title,
		Completed:      row.Completed,
		Recurrence:     domain.Recurrence(row.Recurrence),
		CustomInterval: row.CustomInterval,
		IsLastInstance: row.IsLastInstance,
		AutoRenew:      row.AutoRenew,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if row.DueDate.Valid {
		due, err := domain.ParseDate(row.DueDate.String)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %s: %w", row.ID, err)
		}
		task.DueDate = &due
	}
	if row.CustomUnit.Valid {
		task.CustomUnit = domain.Recurrence(row.CustomUnit.String)
	}
	if row.SeriesID.Valid {
		task.SeriesID = row.SeriesID.String
	}

	if len(row.Subtasks) > 0 {
		var docs []subtaskDoc
		if err := json.Unmarshal(row.Subtasks, &docs); err != nil {
			return domain.Task{}, fmt.Errorf("task %s subtasks: %w", row.ID, err)
		}
		for _, doc := range docs {
			task.Subtasks = append(task.Subtasks, domain.Subtask{ID: doc.ID, Text: doc.Text, Done: doc.Done})
		}
	}
	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &task.Tags); err != nil {
			return domain.Task{}, fmt.Errorf("task %s tags: %w", row.ID, err)
		}
	}
	return task, nil
}

func mapDomainTaskToRow(task domain.Task) (taskRow, error) {
	docs := make([]subtaskDoc, 0, len(task.Subtasks))
	for _, sub := range task.Subtasks {
		docs = append(docs, subtaskDoc{ID: sub.ID, Text: sub.Text, Done: sub.Done})
	}
	subtasks, err := json.Marshal(docs)
	if err != nil {
		return taskRow{}, err
	}
	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return taskRow{}, err
	}

	row := taskRow{
		ID:             task.ID,
		Title:          task.Title,
		Completed:      task.Completed,
		Subtasks:       subtasks,
		Tags:           tags,
		Recurrence:     string(task.Recurrence),
		CustomInterval: task.CustomInterval,
		IsLastInstance: task.IsLastInstance,
		AutoRenew:      task.AutoRenew,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
	if row.Recurrence == "" {
		row.Recurrence = string(domain.RecurrenceNone)
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullString{String: task.DueDate.String(), Valid: true}
	}
	if task.CustomUnit != "" {
		row.CustomUnit = sql.NullString{String: string(task.CustomUnit), Valid: true}
	}
	if task.SeriesID != "" {
		row.SeriesID = sql.NullString{String: task.SeriesID, Valid: true}
	}
	return row, nil
}
