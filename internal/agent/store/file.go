package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/sunset-resort/concierge/internal/agent/model"
	errx "github.com/sunset-resort/concierge/internal/core/error"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// document is the on-disk layout: all records keyed by id in one JSON file.
type document struct {
	Reservations map[string]model.Reservation `json:"reservations"`
}

// FileReservationStore keeps every reservation in a single JSON document and
// replaces it atomically on each mutation: the new document is written to a
// temp file in the same directory, synced, then renamed over the old one. A
// failed write leaves the previous document intact. Writes are serialized by
// a single writer lock; reads may run concurrently.
type FileReservationStore struct {
	path string
	mu   sync.RWMutex
}

func NewFileReservationStore(path string) *FileReservationStore {
	return &FileReservationStore{path: path}
}

func (s *FileReservationStore) Get(ctx context.Context, id string) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	r, ok := doc.Reservations[id]
	if !ok {
		return nil, model.ErrReservationNotFound
	}
	return &r, nil
}

func (s *FileReservationStore) Put(ctx context.Context, r *model.Reservation) (string, error) {
	if r == nil {
		return "", errors.New("nil reservation")
	}
	rec := *r
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Status == "" {
		rec.Status = model.ReservationActive
	}
	if err := rec.Validate(); err != nil {
		return "", fmt.Errorf("invalid reservation: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}
	if _, exists := doc.Reservations[rec.ID]; exists {
		return "", fmt.Errorf("reservation id %s already exists", rec.ID)
	}
	doc.Reservations[rec.ID] = rec

	if err := s.write(doc); err != nil {
		return "", err
	}
	logx.Info().Str("reservation_id", rec.ID).Str("room_type", rec.RoomType).Msg("reservation persisted")
	return rec.ID, nil
}

func (s *FileReservationStore) Update(ctx context.Context, id string, fields model.ReservationUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	rec, ok := doc.Reservations[id]
	if !ok {
		return model.ErrReservationNotFound
	}

	if fields.CheckIn != nil {
		rec.CheckIn = *fields.CheckIn
	}
	if fields.CheckOut != nil {
		rec.CheckOut = *fields.CheckOut
	}
	if fields.Status != nil {
		rec.Status = *fields.Status
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid update: %w", err)
	}
	doc.Reservations[id] = rec

	if err := s.write(doc); err != nil {
		return err
	}
	logx.Info().Str("reservation_id", id).Msg("reservation updated")
	return nil
}

// load reads the whole document. A missing file is an empty store; a corrupt
// file is an error, never an empty store, so a later write cannot wipe data.
func (s *FileReservationStore) load() (*document, error) {
	doc := &document{Reservations: make(map[string]model.Reservation)}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		logx.Error().Err(err).Str("path", s.path).Msg("failed to read reservation file")
		return nil, errx.New(err, http.StatusInternalServerError, errx.StoreErrorMessage)
	}
	if err := json.Unmarshal(b, doc); err != nil {
		logx.Error().Err(err).Str("path", s.path).Msg("reservation file is corrupt")
		return nil, errx.New(err, http.StatusInternalServerError, errx.StoreErrorMessage)
	}
	if doc.Reservations == nil {
		doc.Reservations = make(map[string]model.Reservation)
	}
	return doc, nil
}

// write replaces the document atomically via temp file + rename.
func (s *FileReservationStore) write(doc *document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errx.New(err, http.StatusInternalServerError, errx.StoreErrorMessage)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".reservations-*.json")
	if err != nil {
		logx.Error().Err(err).Str("dir", dir).Msg("failed to create temp reservation file")
		return errx.New(err, http.StatusInternalServerError, errx.StoreErrorMessage)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errx.New(err, http.StatusInternalServerError, errx.StoreErrorMessage)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errx.New(err, http.StatusInternalServerError, errx.StoreErrorMessage)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errx.New(err, http.StatusInternalServerError, errx.StoreErrorMessage)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		logx.Error().Err(err).Str("path", s.path).Msg("failed to replace reservation file")
		return errx.New(err, http.StatusInternalServerError, errx.StoreErrorMessage)
	}
	return nil
}

var _ model.ReservationStore = (*FileReservationStore)(nil)
