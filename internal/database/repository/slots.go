package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/digietal/artgallery/internal/gallery"
)

// SlotRepo handles the key-value slots table.
type SlotRepo struct {
	db *sql.DB
}

func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO slots(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
	 value=excluded.value,
	 updated_at=CURRENT_TIMESTAMP;
	`, key, value)
	return err
}

// Get returns nil, nil when the key has never been written.
func (r *SlotRepo) Get(ctx context.Context, key string) (*Slot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM slots WHERE key = ?`, key)
	var s Slot
	if err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SlotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key)
	return err
}

// Bind returns a single-key view of the repo usable as the artwork store's slot.
func (r *SlotRepo) Bind(key string) *KeySlot {
	return &KeySlot{repo: r, key: key}
}

// KeySlot reads and overwrites one key wholesale.
type KeySlot struct {
	repo *SlotRepo
	key  string
}

func (k *KeySlot) Read(ctx context.Context) ([]byte, error) {
	s, err := k.repo.Get(ctx, k.key)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, gallery.ErrSlotEmpty
	}
	return s.Value, nil
}

func (k *KeySlot) Write(ctx context.Context, data []byte) error {
	return k.repo.Put(ctx, k.key, data)
}

// Clear removes the key so the next Read reports an empty slot.
func (k *KeySlot) Clear(ctx context.Context) error {
	return k.repo.Delete(ctx, k.key)
}
