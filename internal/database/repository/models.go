package repository

import "time"

// Slot represents a slots row: one durable value under a key.
type Slot struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}
