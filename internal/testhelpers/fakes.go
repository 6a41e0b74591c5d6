package testhelpers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/service"
)

// MemoryTokenStore is an in-process service.TokenStore.
type MemoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	resets  map[string]uuid.UUID
}

// NewMemoryTokenStore creates an empty store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: map[string]time.Time{}, resets: map[string]uuid.UUID{}}
}

func (s *MemoryTokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[jti]
	return ok && time.Now().Before(until), nil
}

func (s *MemoryTokenStore) SaveResetToken(_ context.Context, token string, userID uuid.UUID, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[token] = userID
	return nil
}

func (s *MemoryTokenStore) ConsumeResetToken(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resets[token]
	if !ok {
		return uuid.Nil, service.ErrInvalidToken
	}
	delete(s.resets, token)
	return id, nil
}

// SentMail is one message captured by RecordingMailer.
type SentMail struct {
	To   string
	Kind string
	Link string
}

// RecordingMailer is a service.Mailer that keeps messages in memory.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []SentMail
}

func (m *RecordingMailer) SendPasswordReset(user *models.User, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: user.Email, Kind: "reset", Link: resetURL})
	return nil
}

func (m *RecordingMailer) SendWelcome(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: user.Email, Kind: "welcome"})
	return nil
}

// Last returns the most recent message, or the zero value.
func (m *RecordingMailer) Last() SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentMail{}
	}
	return m.Sent[len(m.Sent)-1]
}

var (
	_ service.TokenStore = (*MemoryTokenStore)(nil)
	_ service.Mailer     = (*RecordingMailer)(nil)
)
