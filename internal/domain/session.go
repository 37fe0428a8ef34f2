package domain

import (
	"crypto/subtle"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "Disconnected"
	StatusConnecting   ConnectionStatus = "Connecting"
	StatusConnected    ConnectionStatus = "Connected"
	StatusError        ConnectionStatus = "Error"
)

// ParseConnectionStatus maps the gateway's free-form status strings onto the
// stored enum. ok is false when the value is not recognised; the returned
// status is then StatusError.
func ParseConnectionStatus(raw string) (ConnectionStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "connected", "open":
		return StatusConnected, true
	case "connecting", "initializing", "qr scan required":
		return StatusConnecting, true
	case "disconnected", "logged out", "close", "closed":
		return StatusDisconnected, true
	case "error":
		return StatusError, true
	default:
		return StatusError, false
	}
}

// Session is the per-tenant logical connection to the messaging gateway.
type Session struct {
	SessionID          string           `db:"session_id" json:"sessionId"`
	Tenant             string           `db:"tenant" json:"tenant"`
	GatewayURL         string           `db:"gateway_url" json:"gatewayUrl"`
	WebhookSecret      string           `db:"webhook_secret" json:"-"`
	ConnectionStatus   ConnectionStatus `db:"connection_status" json:"connectionStatus"`
	LastConnectedAt    *time.Time       `db:"last_connected_at" json:"lastConnectedAt,omitempty"`
	IntegrationEnabled bool             `db:"integration_enabled" json:"integrationEnabled"`
	CreatedAt          time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updatedAt"`
}

// EffectiveGatewayURL falls back to def when the session has no URL of its own.
func (s *Session) EffectiveGatewayURL(def string) string {
	if strings.TrimSpace(s.GatewayURL) == "" {
		return def
	}
	return strings.TrimRight(s.GatewayURL, "/")
}

// MatchesWebhookToken compares in constant time. A session without a stored
// secret never matches.
func (s *Session) MatchesWebhookToken(presented string) bool {
	if s.WebhookSecret == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.WebhookSecret), []byte(presented)) == 1
}

// SessionIDFromTenant derives the gateway session id from a tenant key.
// Spaces become underscores; literal '_' and '%' are percent-escaped so the
// mapping can always be reversed.
func SessionIDFromTenant(tenant string) string {
	var b strings.Builder
	b.Grow(len(tenant))
	for i := 0; i < len(tenant); i++ {
		switch c := tenant[i]; c {
		case ' ':
			b.WriteByte('_')
		case '_':
			b.WriteString("%5F")
		case '%':
			b.WriteString("%25")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// TenantFromSessionID reverses SessionIDFromTenant.
func TenantFromSessionID(sessionID string) (string, error) {
	var b strings.Builder
	b.Grow(len(sessionID))
	for i := 0; i < len(sessionID); i++ {
		switch c := sessionID[i]; c {
		case '_':
			b.WriteByte(' ')
		case '%':
			if i+2 >= len(sessionID) {
				return "", fmt.Errorf("%w: truncated escape in session id %q", ErrInvalidInput, sessionID)
			}
			v, err := strconv.ParseUint(sessionID[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("%w: bad escape in session id %q", ErrInvalidInput, sessionID)
			}
			b.WriteByte(byte(v))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
