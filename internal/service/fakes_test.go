package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/internal/repository"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/database"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/gateway"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/storage"
)

//
// Test fakes shared by the service tests.
//

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

type testEnv struct {
	db        *sqlx.DB
	sessions  *repository.SessionRepository
	messages  *repository.MessageRepository
	contacts  *repository.ContactRepository
	logs      *repository.CommunicationLogRepository
	publisher *recordingPublisher
	guard     *MemoryGuard
	registry  *SessionRegistry
	store     *MessageStore
	media     *MediaService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	blobs, err := storage.NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)

	env := &testEnv{
		db:        db,
		sessions:  repository.NewSessionRepository(db),
		messages:  repository.NewMessageRepository(db),
		contacts:  repository.NewContactRepository(db),
		logs:      repository.NewCommunicationLogRepository(db),
		publisher: &recordingPublisher{},
		guard:     NewMemoryGuard(time.Minute),
	}
	env.registry = NewSessionRegistry(env.sessions, env.publisher, env.guard)
	env.store = NewMessageStore(env.messages, env.contacts, MediaPolicyReplace)
	env.media = NewMediaService(blobs, 16*1024*1024)
	return env
}

// enabledSession provisions tenant with the integration switched on.
func (e *testEnv) enabledSession(t *testing.T, tenant string) *domain.Session {
	t.Helper()

	session, err := e.registry.Configure(context.Background(), tenant, "", true)
	require.NoError(t, err)
	return session
}

type published struct {
	topic   string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, payload: payload})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.topic)
	}
	return out
}

type recordingScheduler struct {
	mu    sync.Mutex
	tasks []domain.Task
	err   error
}

func (s *recordingScheduler) Enqueue(_ context.Context, task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *recordingScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

type fakeGateway struct {
	mu sync.Mutex

	sendFn   func(req gateway.SendRequest) (*gateway.SendResult, error)
	startFn  func(req gateway.StartRequest) (*gateway.StartResult, error)
	statusFn func(sessionID string) (*gateway.StatusResult, error)

	sent      []gateway.SendRequest
	starts    []gateway.StartRequest
	ended     []string
	endErr    error
	contactIn []gateway.ContactInfoRequest
}

func (g *fakeGateway) SendMessage(_ context.Context, _ string, req gateway.SendRequest) (*gateway.SendResult, error) {
	g.mu.Lock()
	g.sent = append(g.sent, req)
	g.mu.Unlock()
	return g.sendFn(req)
}

func (g *fakeGateway) StartSession(_ context.Context, _ string, req gateway.StartRequest) (*gateway.StartResult, error) {
	g.mu.Lock()
	g.starts = append(g.starts, req)
	g.mu.Unlock()
	return g.startFn(req)
}

func (g *fakeGateway) QueryStatus(_ context.Context, _ string, sessionID string) (*gateway.StatusResult, error) {
	return g.statusFn(sessionID)
}

func (g *fakeGateway) ContactInfo(_ context.Context, _ string, req gateway.ContactInfoRequest) (map[string]any, error) {
	g.mu.Lock()
	g.contactIn = append(g.contactIn, req)
	g.mu.Unlock()
	return map[string]any{"exists": true, "jid": req.Phone + "@s.whatsapp.net"}, nil
}

func (g *fakeGateway) EndSession(_ context.Context, _ string, sessionID string) (*gateway.EndResult, error) {
	g.mu.Lock()
	g.ended = append(g.ended, sessionID)
	g.mu.Unlock()
	if g.endErr != nil {
		return nil, g.endErr
	}
	return &gateway.EndResult{Status: "logged out"}, nil
}

func (g *fakeGateway) startCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.starts)
}

func sentWith(id string) func(gateway.SendRequest) (*gateway.SendResult, error) {
	return func(gateway.SendRequest) (*gateway.SendResult, error) {
		return &gateway.SendResult{
			Status:     "sent",
			Result:     &gateway.SendMeta{Key: gateway.MessageKey{ID: id}},
			HTTPStatus: 200,
		}, nil
	}
}

func notConnected(gateway.SendRequest) (*gateway.SendResult, error) {
	return &gateway.SendResult{Status: "error", Error: gateway.NotConnectedError, HTTPStatus: 400}, nil
}
