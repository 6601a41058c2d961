package domain

import "time"

// Task представляет модель задачи,
// соответствует таблице tasks в бд
type Task struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
