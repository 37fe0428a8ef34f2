package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/queue"
)

func TestHub_BroadcastsToConnectedClients(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r)
	}))
	defer server.Close()
	defer hub.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), "connection_update", map[string]string{
		"status": "Connected", "sessionId": "Acme_Co",
	}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &ev))
	assert.Equal(t, "connection_update", ev.Type)
	assert.Equal(t, "Acme_Co", ev.Data["sessionId"])

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

type tenantEvent struct {
	Tenant string `json:"tenant"`
	Seq    int    `json:"seq"`
}

func (e tenantEvent) TenantKey() string { return e.Tenant }

func TestHub_ScopesEventsByTenant(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r)
	}))
	defer server.Close()
	defer hub.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	dial := func(query string) *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL+query, nil)
		require.NoError(t, err)
		return conn
	}

	acme := dial("?tenant=Acme+Co")
	defer acme.Close()
	globex := dial("?tenant=Globex")
	defer globex.Close()
	all := dial("")
	defer all.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, hub.Publish(ctx, "incoming_message", tenantEvent{Tenant: "Acme Co", Seq: 1}))
	require.NoError(t, hub.Publish(ctx, "incoming_message", tenantEvent{Seq: 2}))
	require.NoError(t, hub.Publish(ctx, "incoming_message", tenantEvent{Tenant: "Globex", Seq: 3}))
	require.NoError(t, hub.Publish(ctx, "incoming_message", tenantEvent{Tenant: "Acme Co", Seq: 4}))

	read := func(conn *websocket.Conn) int {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var ev struct {
			Data tenantEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &ev))
		return ev.Data.Seq
	}

	assert.Equal(t, 1, read(acme))
	assert.Equal(t, 4, read(acme), "other tenants and unscoped events are skipped")
	assert.Equal(t, 3, read(globex))
	for _, want := range []int{1, 2, 3, 4} {
		assert.Equal(t, want, read(all))
	}
}

func TestHub_PublishWithoutClients(t *testing.T) {
	assert.NoError(t, NewHub().Publish(context.Background(), "incoming_message", nil))
}

type recordingPublisher struct {
	exchange string
	key      string
	env      queue.Envelope
	err      error
}

func (r *recordingPublisher) PublishJSON(_ context.Context, exchange, key string, env queue.Envelope) error {
	r.exchange, r.key, r.env = exchange, key, env
	return r.err
}

func TestBrokerPublisher_UsesTopicAsRoutingKey(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewBrokerPublisher(rec, "whatsapp.realtime")

	require.NoError(t, p.Publish(context.Background(), "incoming_message", "hi"))
	assert.Equal(t, "whatsapp.realtime", rec.exchange)
	assert.Equal(t, "incoming_message", rec.key)
	assert.Equal(t, "incoming_message", rec.env.Meta.Type)
	assert.Equal(t, "hi", rec.env.Data)
}

type funcPublisher func(ctx context.Context, topic string, payload any) error

func (f funcPublisher) Publish(ctx context.Context, topic string, payload any) error {
	return f(ctx, topic, payload)
}

func TestFanout_CallsAllAndReturnsFirstError(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	f := Fanout{
		funcPublisher(func(context.Context, string, any) error { calls++; return boom }),
		funcPublisher(func(context.Context, string, any) error { calls++; return nil }),
	}

	err := f.Publish(context.Background(), "t", nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
