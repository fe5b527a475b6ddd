// Package store owns the authoritative artwork collection and keeps it in a
// durable slot. Every mutation rewrites the whole collection before returning.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/digietal/artgallery/internal/gallery"
)

// Slot is a durable key-value slot holding the serialized collection.
// Read returns gallery.ErrSlotEmpty when nothing was written yet.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Store is used from a single event loop; it does no locking.
type Store struct {
	slot     Slot
	artworks []gallery.Artwork
	seed     func() []gallery.Artwork
	newID    func() string
}

// New returns a store over slot. Call Load before anything else.
func New(slot Slot) *Store {
	return &Store{slot: slot, seed: gallery.Seed, newID: uuid.NewString}
}

// Load reads the persisted collection. Missing or malformed data falls back to
// the seed set, which is persisted straight away.
func (s *Store) Load(ctx context.Context) ([]gallery.Artwork, error) {
	data, err := s.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, gallery.ErrSlotEmpty) {
			zlog.Warn().Err(err).Msg("read artworks slot, using seed data")
		}
		return s.reseed(ctx)
	}
	var list []gallery.Artwork
	if err := json.Unmarshal(data, &list); err != nil || list == nil {
		zlog.Warn().Err(err).Int("bytes", len(data)).Msg("persisted artworks unreadable, using seed data")
		return s.reseed(ctx)
	}
	repaired := s.repairIDs(list)
	s.artworks = list
	if repaired {
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	}
	return s.List(), nil
}

func (s *Store) reseed(ctx context.Context) ([]gallery.Artwork, error) {
	s.artworks = s.seed()
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return s.List(), nil
}

// repairIDs gives records with an empty or repeated id a fresh one.
func (s *Store) repairIDs(list []gallery.Artwork) bool {
	seen := make(map[string]struct{}, len(list))
	changed := false
	for i := range list {
		id := list[i].ID
		if _, dup := seen[id]; id == "" || dup {
			list[i].ID = s.uniqueID(seen)
			zlog.Warn().Str("old_id", id).Str("artwork_id", list[i].ID).Msg("repaired artwork id")
			changed = true
		}
		seen[list[i].ID] = struct{}{}
	}
	return changed
}

func (s *Store) uniqueID(seen map[string]struct{}) string {
	for {
		id := s.newID()
		if _, ok := seen[id]; !ok && id != "" {
			return id
		}
	}
}

// List returns a copy of the collection in display order.
func (s *Store) List() []gallery.Artwork {
	out := make([]gallery.Artwork, len(s.artworks))
	copy(out, s.artworks)
	return out
}

// Get returns a copy of the artwork with id.
func (s *Store) Get(id string) (gallery.Artwork, bool) {
	if i := s.index(id); i >= 0 {
		return s.artworks[i], true
	}
	return gallery.Artwork{}, false
}

// Add stores a with a fresh id at the front of the collection.
func (s *Store) Add(ctx context.Context, a gallery.Artwork) (gallery.Artwork, error) {
	seen := make(map[string]struct{}, len(s.artworks))
	for _, existing := range s.artworks {
		seen[existing.ID] = struct{}{}
	}
	a.ID = s.uniqueID(seen)

	prev := s.artworks
	next := make([]gallery.Artwork, 0, len(prev)+1)
	next = append(next, a)
	next = append(next, prev...)
	s.artworks = next
	if err := s.persist(ctx); err != nil {
		s.artworks = prev
		return gallery.Artwork{}, err
	}
	return a, nil
}

// Update replaces the artwork with a matching id, keeping its position.
func (s *Store) Update(ctx context.Context, a gallery.Artwork) (gallery.Artwork, error) {
	i := s.index(a.ID)
	if i < 0 {
		return gallery.Artwork{}, fmt.Errorf("update %q: %w", a.ID, gallery.ErrNotFound)
	}
	old := s.artworks[i]
	s.artworks[i] = a
	if err := s.persist(ctx); err != nil {
		s.artworks[i] = old
		return gallery.Artwork{}, err
	}
	return a, nil
}

// Remove deletes the artwork with id. Removing a missing id only rewrites the slot.
func (s *Store) Remove(ctx context.Context, id string) error {
	prev := s.artworks
	next := make([]gallery.Artwork, 0, len(prev))
	for _, a := range prev {
		if a.ID != id {
			next = append(next, a)
		}
	}
	s.artworks = next
	if err := s.persist(ctx); err != nil {
		s.artworks = prev
		return err
	}
	return nil
}

func (s *Store) index(id string) int {
	for i := range s.artworks {
		if s.artworks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	list := s.artworks
	if list == nil {
		list = []gallery.Artwork{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode artworks: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("write artworks: %w", err)
	}
	return nil
}
