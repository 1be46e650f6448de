package domain

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	Position    int       `json:"position"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
