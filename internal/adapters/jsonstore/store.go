// Package jsonstore implements the repository interfaces on top of a
// single JSON document on disk. It is the default backend for local
// development and the source format for the snapshot import.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/domain/entities"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// Snapshot is the on-disk document: six collections in one file. It is
// also the exchange format consumed by the snapshot import.
type Snapshot struct {
	Users         []*entities.User         `json:"users"`
	Services      []*entities.Service      `json:"services"`
	Contracts     []*entities.Contract     `json:"contracts"`
	Notifications []*entities.Notification `json:"notifications"`
	Reviews       []*entities.Review       `json:"reviews"`
	Questions     []*entities.Question     `json:"questions"`
}

func (s *Snapshot) normalize() {
	if s.Users == nil {
		s.Users = []*entities.User{}
	}
	if s.Services == nil {
		s.Services = []*entities.Service{}
	}
	if s.Contracts == nil {
		s.Contracts = []*entities.Contract{}
	}
	if s.Notifications == nil {
		s.Notifications = []*entities.Notification{}
	}
	if s.Reviews == nil {
		s.Reviews = []*entities.Review{}
	}
	if s.Questions == nil {
		s.Questions = []*entities.Question{}
	}
}

// Store owns the document and serializes access to it. Every write
// rewrites the whole file; reads hand out copies so callers can never
// mutate shared state.
type Store struct {
	path string

	mu  sync.RWMutex
	doc Snapshot
}

// Open loads the document at path, creating an empty one when the file
// does not exist yet. A file that exists but cannot be read or parsed is
// reported as a storage error rather than silently replaced: resetting a
// corrupt database to empty would destroy data.
func Open(path string) (*Store, error) {
	st := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		st.doc.normalize()
		if err := st.persistLocked(); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("initialized empty json store")
		return st, nil
	case err != nil:
		return nil, apperrors.NewStorageError(fmt.Sprintf("reading store file %s", path), err)
	}

	if err := json.Unmarshal(data, &st.doc); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("parsing store file %s", path), err)
	}
	st.doc.normalize()
	return st, nil
}

// LoadSnapshot reads a document without opening it as a live store. The
// snapshot import uses it as its read-only source.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("reading snapshot %s", path), err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("parsing snapshot %s", path), err)
	}
	snap.normalize()
	return &snap, nil
}

// Path returns the file backing this store.
func (st *Store) Path() string {
	return st.path
}

// persistLocked writes the whole document back to disk. Callers must hold
// the write lock.
func (st *Store) persistLocked() error {
	data, err := json.MarshalIndent(&st.doc, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("encoding store document", err)
	}
	if dir := filepath.Dir(st.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("creating store directory %s", dir), err)
		}
	}
	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("writing store file %s", st.path), err)
	}
	return nil
}

func copyUser(u *entities.User) *entities.User {
	out := *u
	out.Favorites = append([]string(nil), u.Favorites...)
	return &out
}

func copyService(s *entities.Service) *entities.Service {
	out := *s
	return &out
}

func copyContract(c *entities.Contract) *entities.Contract {
	out := *c
	return &out
}

func copyNotification(n *entities.Notification) *entities.Notification {
	out := *n
	return &out
}

func copyReview(r *entities.Review) *entities.Review {
	out := *r
	return &out
}

func copyQuestion(q *entities.Question) *entities.Question {
	out := *q
	return &out
}
