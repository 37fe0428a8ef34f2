package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
)

func testConfig() environments.GatewayConfig {
	return environments.GatewayConfig{
		StartTimeout:  2 * time.Second,
		SendTimeout:   2 * time.Second,
		StatusTimeout: 200 * time.Millisecond,
		AuxTimeout:    2 * time.Second,
	}
}

func TestSendMessage_Sent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessions/send", r.URL.Path)

		var req SendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Acme_Co", req.SessionID)
		assert.Equal(t, "14155550100", req.Receiver)
		assert.Equal(t, "Hello", req.Message)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"sent","result":{"key":{"id":"ABC1"}}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig())
	res, err := client.SendMessage(context.Background(), server.URL+"/", SendRequest{
		SessionID: "Acme_Co", Receiver: "14155550100", Message: "Hello",
	})
	require.NoError(t, err)
	assert.True(t, res.Sent())
	assert.Equal(t, "ABC1", res.MessageID())
	assert.False(t, res.NotConnected())
}

func TestSendMessage_NotConnectedIsAResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Session not connected"}`))
	}))
	defer server.Close()

	res, err := NewClient(testConfig()).SendMessage(context.Background(), server.URL, SendRequest{SessionID: "s"})
	require.NoError(t, err)
	assert.Equal(t, "error", res.Status)
	assert.True(t, res.NotConnected())
}

func TestSendMessage_ServerErrorCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"number not on whatsapp"}`))
	}))
	defer server.Close()

	res, err := NewClient(testConfig()).SendMessage(context.Background(), server.URL, SendRequest{SessionID: "s"})
	require.NoError(t, err)
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, "number not on whatsapp", res.Error)
	assert.False(t, res.NotConnected())
}

func TestSendMessage_NonJSONIsBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>proxy error</html>`))
	}))
	defer server.Close()

	_, err := NewClient(testConfig()).SendMessage(context.Background(), server.URL, SendRequest{SessionID: "s"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadResponse))
	assert.False(t, errors.Is(err, ErrUnreachable))

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Contains(t, gwErr.Body, "proxy error")
}

func TestSendMessage_LongMultibyteBodyIsCutOnRuneBoundary(t *testing.T) {
	// Two-byte runes put the byte offset of maxBodySnippet mid-rune
	// whenever the prefix is odd.
	body := "x" + strings.Repeat("é", 2*maxBodySnippet)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	_, err := NewClient(testConfig()).SendMessage(context.Background(), server.URL, SendRequest{SessionID: "s"})
	require.Error(t, err)

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.True(t, utf8.ValidString(gwErr.Body), "snippet must stay valid UTF-8")
	assert.True(t, strings.HasSuffix(gwErr.Body, "..."))
	assert.Equal(t, maxBodySnippet, utf8.RuneCountInString(strings.TrimSuffix(gwErr.Body, "...")))
	assert.True(t, utf8.ValidString(err.Error()))
}

func TestSendMessage_UnexpectedShapeIsBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	_, err := NewClient(testConfig()).SendMessage(context.Background(), server.URL, SendRequest{SessionID: "s"})
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestSendMessage_ConnectionRefusedIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	_, err := NewClient(testConfig()).SendMessage(context.Background(), addr, SendRequest{SessionID: "s"})
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestQueryStatus_TimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, err := NewClient(testConfig()).QueryStatus(context.Background(), server.URL, "Acme_Co")
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestQueryStatus_EscapesSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/Acme%255FCo/status", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"status":"Connected"}`))
	}))
	defer server.Close()

	res, err := NewClient(testConfig()).QueryStatus(context.Background(), server.URL, "Acme%5FCo")
	require.NoError(t, err)
	assert.Equal(t, "Connected", res.Status)
}

func TestQueryStatus_NotFoundIsBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Session not found"}`))
	}))
	defer server.Close()

	_, err := NewClient(testConfig()).QueryStatus(context.Background(), server.URL, "x")
	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusNotFound, gwErr.StatusCode)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestStartSession_QRAndStatus(t *testing.T) {
	replies := []string{`{"qr":"2@abc"}`, `{"status":"Connected"}`, `{}`}
	n := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req StartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tok", req.WebhookToken)
		_, _ = w.Write([]byte(replies[n]))
		n++
	}))
	defer server.Close()

	client := NewClient(testConfig())
	req := StartRequest{SessionID: "s", WebhookURL: "http://bridge/api/v1/whatsapp/webhook", WebhookToken: "tok"}

	res, err := client.StartSession(context.Background(), server.URL, req)
	require.NoError(t, err)
	assert.Equal(t, "2@abc", res.QR)

	res, err = client.StartSession(context.Background(), server.URL, req)
	require.NoError(t, err)
	assert.Equal(t, "Connected", res.Status)

	_, err = client.StartSession(context.Background(), server.URL, req)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestEndSessionAndContactInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/sessions/Acme_Co":
			_, _ = w.Write([]byte(`{"status":"logged out"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/sessions/contact-info":
			_, _ = w.Write([]byte(`{"name":"Jane","status":"busy"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(testConfig())

	end, err := client.EndSession(context.Background(), server.URL, "Acme_Co")
	require.NoError(t, err)
	assert.Equal(t, "logged out", end.Status)

	info, err := client.ContactInfo(context.Background(), server.URL, ContactInfoRequest{SessionID: "Acme_Co", Phone: "14155550100"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", info["name"])
}
