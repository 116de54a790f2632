package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"portfolio-service/internal/entity"
	"portfolio-service/internal/repository"
	"portfolio-service/migrations"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := repository.Open(ctx, repository.DriverSQLite, filepath.Join(t.TempDir(), "portfolio.db"), 1, 0)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.AutoMigrate(ctx, db, repository.DriverSQLite, 0))
	return db
}

type memorySessions struct {
	mu     sync.Mutex
	tokens map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{tokens: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memorySessions) Save(_ context.Context, username, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.tokens[username] = token
	m.ttls[username] = ttl
	return nil
}

func (m *memorySessions) Lookup(_ context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	token, ok := m.tokens[username]
	if !ok {
		return "", entity.ErrNotFound
	}
	return token, nil
}

func (m *memorySessions) Revoke(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, username)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.ChangeEvent
	err    error
}

func (p *recordingPublisher) PublishChange(_ context.Context, event entity.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Kind+"-"+e.Action)
	}
	return out
}

var errBroker = errors.New("broker unavailable")
