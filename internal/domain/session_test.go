package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIDFromTenant(t *testing.T) {
	tests := []struct {
		tenant string
		want   string
	}{
		{"Acme Co", "Acme_Co"},
		{"Acme", "Acme"},
		{"  padded  ", "__padded__"},
		{"snake_case Ltd", "snake%5Fcase_Ltd"},
		{"100% Foods", "100%25_Foods"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SessionIDFromTenant(tt.tenant), tt.tenant)
	}
}

func TestTenantSessionIDRoundTrip(t *testing.T) {
	tenants := []string{
		"Acme Co",
		"A  B   C",
		"snake_case Ltd",
		"100% Foods & Co",
		"Ünïcode Şirketi",
		"%5F literal",
		"",
	}

	for _, tenant := range tenants {
		got, err := TenantFromSessionID(SessionIDFromTenant(tenant))
		require.NoError(t, err, tenant)
		assert.Equal(t, tenant, got)
	}
}

func TestTenantFromSessionID_BadEscape(t *testing.T) {
	for _, id := range []string{"abc%", "abc%5", "abc%zz"} {
		_, err := TenantFromSessionID(id)
		assert.True(t, errors.Is(err, ErrInvalidInput), id)
	}
}

func TestParseConnectionStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   ConnectionStatus
		wantOK bool
	}{
		{"Connected", StatusConnected, true},
		{"QR Scan Required", StatusConnecting, true},
		{"Initializing", StatusConnecting, true},
		{"logged out", StatusDisconnected, true},
		{"Error", StatusError, true},
		{"banana", StatusError, false},
	}

	for _, tt := range tests {
		got, ok := ParseConnectionStatus(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.wantOK, ok, tt.raw)
	}
}

func TestSession_MatchesWebhookToken(t *testing.T) {
	s := &Session{WebhookSecret: "s3cret", CreatedAt: time.Now()}

	assert.True(t, s.MatchesWebhookToken("s3cret"))
	assert.False(t, s.MatchesWebhookToken("s3cre"))
	assert.False(t, s.MatchesWebhookToken(""))
	assert.False(t, (&Session{}).MatchesWebhookToken("anything"))
}

func TestSession_EffectiveGatewayURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:3000", (&Session{}).EffectiveGatewayURL("http://127.0.0.1:3000"))
	assert.Equal(t, "http://gw:3000", (&Session{GatewayURL: "http://gw:3000/"}).EffectiveGatewayURL("x"))
}
