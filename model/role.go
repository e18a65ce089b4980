package model

import (
	"time"

	"github.com/lib/pq"
)

// Role is a permission-tagged role assignable to users.
type Role struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Permissions pq.StringArray `json:"permissions"`
	CreatedAt   time.Time      `json:"createdAt"`
}
