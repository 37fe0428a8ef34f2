package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/gateway"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/phone"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/queue"
)

type gatewayAPI interface {
	StartSession(ctx context.Context, baseURL string, req gateway.StartRequest) (*gateway.StartResult, error)
	QueryStatus(ctx context.Context, baseURL, sessionID string) (*gateway.StatusResult, error)
	ContactInfo(ctx context.Context, baseURL string, req gateway.ContactInfoRequest) (map[string]any, error)
	EndSession(ctx context.Context, baseURL, sessionID string) (*gateway.EndResult, error)
}

type managedSessions interface {
	Ensure(ctx context.Context, tenant string) (*domain.Session, error)
	Configure(ctx context.Context, tenant, gatewayURL string, enabled bool) (*domain.Session, error)
	ActiveSessionFor(ctx context.Context, tenant string) (*domain.Session, error)
	Lookup(ctx context.Context, sessionID string) (*domain.Session, error)
	UpdateStatus(ctx context.Context, sessionID string, status domain.ConnectionStatus, at time.Time) error
}

// StatusDisabled is reported for tenants without an enabled integration.
const StatusDisabled = "Disabled"

type ConnectResult struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	QR        string `json:"qr,omitempty"`
}

type StatusReport struct {
	Tenant          string     `json:"tenant"`
	SessionID       string     `json:"sessionId,omitempty"`
	Status          string     `json:"status"`
	LastConnectedAt *time.Time `json:"lastConnected,omitempty"`
	Reconnecting    bool       `json:"reconnecting"`
	GatewayReached  bool       `json:"gatewayReached"`
}

// SessionManager drives session lifecycle operations against the gateway.
type SessionManager struct {
	sessions   managedSessions
	gateway    gatewayAPI
	guard      ReconnectGuard
	webhookURL string
	defaultURL string
	reconnect  environments.ReconnectConfig
	sleep      func(ctx context.Context, d time.Duration) error
	now        func() time.Time
}

func NewSessionManager(
	sessions managedSessions,
	gw gatewayAPI,
	guard ReconnectGuard,
	webhookURL string,
	gwCfg environments.GatewayConfig,
	reconnect environments.ReconnectConfig,
) *SessionManager {
	return &SessionManager{
		sessions:   sessions,
		gateway:    gw,
		guard:      guard,
		webhookURL: webhookURL,
		defaultURL: gwCfg.DefaultURL,
		reconnect:  reconnect,
		sleep:      sleepContext,
		now:        time.Now,
	}
}

func (m *SessionManager) Configure(ctx context.Context, tenant, gatewayURL string, enabled bool) (*domain.Session, error) {
	return m.sessions.Configure(ctx, tenant, gatewayURL, enabled)
}

// Connect starts the tenant's session on the gateway. A QR payload means the
// device still has to be paired.
func (m *SessionManager) Connect(ctx context.Context, tenant string) (*ConnectResult, error) {
	if _, err := m.sessions.Ensure(ctx, tenant); err != nil {
		return nil, err
	}

	session, err := m.sessions.ActiveSessionFor(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return m.start(ctx, session)
}

func (m *SessionManager) start(ctx context.Context, session *domain.Session) (*ConnectResult, error) {
	res, err := m.gateway.StartSession(ctx, session.EffectiveGatewayURL(m.defaultURL), gateway.StartRequest{
		SessionID:    session.SessionID,
		WebhookURL:   m.webhookURL,
		WebhookToken: session.WebhookSecret,
	})
	if err != nil {
		return nil, err
	}

	out := &ConnectResult{SessionID: session.SessionID, Status: res.Status, QR: res.QR}

	status := domain.StatusConnecting
	if res.QR == "" {
		if parsed, ok := domain.ParseConnectionStatus(res.Status); ok {
			status = parsed
		}
	} else if out.Status == "" {
		out.Status = "QR Scan Required"
	}

	if status != session.ConnectionStatus || status == domain.StatusConnected {
		if err := m.sessions.UpdateStatus(ctx, session.SessionID, status, m.now()); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Status reconciles the stored status with the gateway's live view. The
// stored value is reported when the gateway cannot be reached.
func (m *SessionManager) Status(ctx context.Context, tenant string) (*StatusReport, error) {
	session, err := m.sessions.ActiveSessionFor(ctx, tenant)
	if errors.Is(err, domain.ErrNoActiveSession) {
		return &StatusReport{Tenant: tenant, Status: StatusDisabled}, nil
	}
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		Tenant:          tenant,
		SessionID:       session.SessionID,
		Status:          string(session.ConnectionStatus),
		LastConnectedAt: session.LastConnectedAt,
	}
	if report.Status == "" {
		report.Status = string(domain.StatusDisconnected)
	}

	live, err := m.gateway.QueryStatus(ctx, session.EffectiveGatewayURL(m.defaultURL), session.SessionID)
	if err != nil {
		logger.Debugf("Could not reach gateway for session %s: %v", session.SessionID, err)
	} else {
		report.GatewayReached = true
		if status, ok := domain.ParseConnectionStatus(live.Status); ok && status != session.ConnectionStatus {
			if err := m.sessions.UpdateStatus(ctx, session.SessionID, status, m.now()); err != nil {
				return nil, err
			}
			report.Status = string(status)
			if status == domain.StatusConnected {
				at := m.now().UTC()
				report.LastConnectedAt = &at
			}
		}
	}

	if inFlight, err := m.guard.InFlight(ctx, session.SessionID); err != nil {
		logger.Warnf("Could not read reconnect flag for %s: %v", session.SessionID, err)
	} else {
		report.Reconnecting = inFlight
	}

	return report, nil
}

// Logout ends the gateway session. The local status is reset even when the
// gateway is unreachable.
func (m *SessionManager) Logout(ctx context.Context, tenant string) error {
	session, err := m.sessions.ActiveSessionFor(ctx, tenant)
	if err != nil {
		return err
	}

	if _, err := m.gateway.EndSession(ctx, session.EffectiveGatewayURL(m.defaultURL), session.SessionID); err != nil {
		logger.Warnf("Gateway logout for session %s failed: %v", session.SessionID, err)
	}

	return m.sessions.UpdateStatus(ctx, session.SessionID, domain.StatusDisconnected, m.now())
}

func (m *SessionManager) ContactInfo(ctx context.Context, tenant, rawPhone string) (map[string]any, error) {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPhone, rawPhone)
	}

	session, err := m.sessions.ActiveSessionFor(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return m.gateway.ContactInfo(ctx, session.EffectiveGatewayURL(m.defaultURL), gateway.ContactInfoRequest{
		SessionID: session.SessionID,
		Phone:     normalized,
	})
}

// Reconnect is the reconnect task handler. It retries with bounded jittered
// exponential backoff and always clears the in-flight flag.
func (m *SessionManager) Reconnect(ctx context.Context, task domain.Task) error {
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.guard.Release(releaseCtx, task.SessionID); err != nil {
			logger.Warnf("Failed to clear reconnect flag for %s: %v", task.SessionID, err)
		}
	}()

	session, err := m.sessions.Lookup(ctx, task.SessionID)
	if err != nil {
		return fmt.Errorf("reconnect %s: %w", task.SessionID, err)
	}
	if !session.IntegrationEnabled {
		logger.Infof("Skipping reconnect for disabled session %s", task.SessionID)
		return nil
	}

	attempts := m.reconnect.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		res, err := m.start(ctx, session)
		switch {
		case err != nil:
			lastErr = err
			logger.Warnf("Reconnect attempt %d/%d for session %s failed: %v", attempt, attempts, session.SessionID, err)
		case res.QR != "":
			logger.Warnf("Session %s needs to be paired again, giving up automatic reconnect", session.SessionID)
			return nil
		case res.Status != "" && isConnected(res.Status):
			logger.Infof("Session %s reconnected on attempt %d", session.SessionID, attempt)
			return nil
		default:
			lastErr = fmt.Errorf("gateway reported %q", res.Status)
			logger.Debugf("Reconnect attempt %d/%d for session %s: %v", attempt, attempts, session.SessionID, lastErr)
		}

		if attempt == attempts {
			break
		}
		delay := queue.Backoff(attempt, m.reconnect.BaseDelay, m.reconnect.MaxDelay, m.reconnect.JitterPercent)
		if err := m.sleep(ctx, delay); err != nil {
			lastErr = err
			break
		}
		if refreshed, err := m.sessions.Lookup(ctx, session.SessionID); err == nil {
			session = refreshed
		}
	}

	if err := m.sessions.UpdateStatus(ctx, session.SessionID, domain.StatusError, m.now()); err != nil {
		logger.Errorf("Failed to mark session %s as errored: %v", session.SessionID, err)
	}

	return fmt.Errorf("reconnect %s gave up: %w", session.SessionID, lastErr)
}

func isConnected(raw string) bool {
	status, ok := domain.ParseConnectionStatus(raw)
	return ok && status == domain.StatusConnected
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
