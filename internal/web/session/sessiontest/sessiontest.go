// Package sessiontest provides an in-memory session storage for tests.
package sessiontest

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/web/session"
)

// Storage is a minimal in-memory implementation of fiber.Storage.
type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ fiber.Storage = (*Storage)(nil)

func (s *Storage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *Storage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *Storage) Close() error { return nil }

// Len returns the number of stored sessions.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// Init installs a fresh in-memory store as the global session store.
func Init() *Storage {
	st := &Storage{data: make(map[string][]byte)}
	session.Init(st)

	return st
}

// SignIn stores a session for p and returns its id.
func SignIn(p models.Profile) (string, error) {
	id, err := session.GenerateSessionID()
	if err != nil {
		return "", err
	}

	if err = (&session.Data{Profile: p}).Write(id, time.Hour); err != nil {
		return "", err
	}

	return id, nil
}
