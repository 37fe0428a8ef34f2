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
	"github.com/onurcolak/whatsapp-session-bridge/pkg/sanitize"
)

const maxErrorDetail = 500

type activeSessions interface {
	ActiveSessionFor(ctx context.Context, tenant string) (*domain.Session, error)
}

type gatewaySender interface {
	SendMessage(ctx context.Context, baseURL string, req gateway.SendRequest) (*gateway.SendResult, error)
}

type communicationLog interface {
	Append(ctx context.Context, entry *domain.CommunicationLogEntry) error
}

type taskEnqueuer interface {
	Enqueue(ctx context.Context, task domain.Task) error
}

// OutboundDispatcher delivers messages through the tenant's gateway session
// and schedules a reconnect when the gateway reports the session down.
type OutboundDispatcher struct {
	sessions  activeSessions
	gateway   gatewaySender
	store     messageSaver
	media     mediaStorer
	logs      communicationLog
	guard     ReconnectGuard
	scheduler taskEnqueuer

	defaultGatewayURL string
	reconnectTimeout  time.Duration
	maxContentLength  int
}

type DispatcherDeps struct {
	Sessions  activeSessions
	Gateway   gatewaySender
	Store     messageSaver
	Media     mediaStorer
	Logs      communicationLog
	Guard     ReconnectGuard
	Scheduler taskEnqueuer
}

func NewOutboundDispatcher(deps DispatcherDeps, gw environments.GatewayConfig, rc environments.ReconnectConfig, mc environments.MessageConfig) *OutboundDispatcher {
	return &OutboundDispatcher{
		sessions:          deps.Sessions,
		gateway:           deps.Gateway,
		store:             deps.Store,
		media:             deps.Media,
		logs:              deps.Logs,
		guard:             deps.Guard,
		scheduler:         deps.Scheduler,
		defaultGatewayURL: gw.DefaultURL,
		reconnectTimeout:  rc.TaskTimeout,
		maxContentLength:  mc.MaxContentLength,
	}
}

// Send validates and delivers one message. The returned error is non-nil
// only for InvalidInput and NoActiveSession; every other failure is an
// error-status result.
func (d *OutboundDispatcher) Send(ctx context.Context, req domain.SendRequest) (domain.SendResult, error) {
	kind := req.Kind
	if kind == "" {
		kind = domain.KindChat
	}

	body := d.truncate(sanitize.Message(req.Body))
	if body == "" {
		d.audit(ctx, req.Tenant, req.Receiver, kind, "Invalid message content")
		return errorResult("Invalid message content"), fmt.Errorf("%w: message body is empty", domain.ErrInvalidInput)
	}

	receiver, err := phone.Normalize(req.Receiver)
	if err != nil {
		d.audit(ctx, req.Tenant, req.Receiver, kind, "Invalid phone number")
		return errorResult("Invalid phone number"), fmt.Errorf("%w: invalid receiver %q", domain.ErrInvalidInput, req.Receiver)
	}

	session, err := d.sessions.ActiveSessionFor(ctx, req.Tenant)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			result := errorResult(fmt.Sprintf("WhatsApp integration not enabled for %s", req.Tenant))
			d.audit(ctx, req.Tenant, receiver, kind, result.Error)
			return result, err
		}
		logger.Errorf("Session lookup for tenant %q failed: %v", req.Tenant, err)
		result := errorResult("Failed to resolve session")
		d.audit(ctx, req.Tenant, receiver, kind, result.Error)
		return result, nil
	}

	res, err := d.gateway.SendMessage(ctx, session.EffectiveGatewayURL(d.defaultGatewayURL), gateway.SendRequest{
		SessionID: session.SessionID,
		Receiver:  receiver,
		Message:   body,
		Media:     req.Media,
	})
	if err != nil {
		logger.Errorf("Send to %s via session %s failed: %v", receiver, session.SessionID, err)
		result := errorResult(classify(err))
		d.audit(ctx, req.Tenant, receiver, kind, err.Error())
		return result, nil
	}

	if res.NotConnected() {
		d.scheduleReconnect(ctx, session)
		d.audit(ctx, req.Tenant, receiver, kind, res.Error)
		return errorResult(domain.SendErrorReconnecting), nil
	}

	if !res.Sent() {
		d.audit(ctx, req.Tenant, receiver, kind, res.Error)
		return errorResult(res.Error), nil
	}

	result := domain.SendResult{Status: domain.SendStatusSent, GatewayMessageID: res.MessageID()}

	msg, err := d.store.Save(ctx, domain.MessageEvent{
		GatewayMessageID: res.MessageID(),
		Direction:        domain.DirectionOutbound,
		Phone:            receiver,
		Body:             body,
		Tenant:           req.Tenant,
	})
	if err != nil {
		logger.Errorf("Message to %s was sent but could not be stored: %v", receiver, err)
	} else {
		result.MessageID = msg.ID
		d.attachOutboundMedia(ctx, msg, req.Media)
	}

	d.audit(ctx, req.Tenant, receiver, kind, "")
	return result, nil
}

func (d *OutboundDispatcher) truncate(body string) string {
	if d.maxContentLength <= 0 || len([]rune(body)) <= d.maxContentLength {
		return body
	}

	logger.Warnf("Message exceeds max content length (%d), truncating", d.maxContentLength)

	ellipsis := "..."
	if d.maxContentLength > len(ellipsis) {
		return sanitize.Truncate(body, d.maxContentLength-len(ellipsis)) + ellipsis
	}
	return sanitize.Truncate(body, d.maxContentLength)
}

// scheduleReconnect submits at most one reconnect task per session.
func (d *OutboundDispatcher) scheduleReconnect(ctx context.Context, session *domain.Session) {
	acquired, err := d.guard.TryAcquire(ctx, session.SessionID)
	if err != nil {
		logger.Errorf("Reconnect guard for %s failed: %v", session.SessionID, err)
		return
	}
	if !acquired {
		logger.Debugf("Reconnect already pending for session %s", session.SessionID)
		return
	}

	task := domain.Task{
		Kind:      domain.TaskReconnectSession,
		Tenant:    session.Tenant,
		SessionID: session.SessionID,
		DedupKey:  "reconnect:" + session.SessionID,
		Timeout:   d.reconnectTimeout,
	}
	if err := d.scheduler.Enqueue(ctx, task); err != nil {
		logger.Errorf("Failed to enqueue reconnect for session %s: %v", session.SessionID, err)
		if relErr := d.guard.Release(ctx, session.SessionID); relErr != nil {
			logger.Warnf("Failed to clear reconnect flag for %s: %v", session.SessionID, relErr)
		}
		return
	}

	logger.Infof("Session %s not connected, reconnect scheduled", session.SessionID)
}

func (d *OutboundDispatcher) attachOutboundMedia(ctx context.Context, msg *domain.Message, media *domain.MediaPayload) {
	if media == nil || media.Data == "" || d.media == nil {
		return
	}

	url, err := d.media.Store(ctx, media)
	if err != nil {
		logger.Errorf("Failed to store media for message %d: %v", msg.ID, err)
		return
	}
	if err := d.store.AttachMedia(ctx, msg.ID, url); err != nil {
		logger.Errorf("Failed to attach media to message %d: %v", msg.ID, err)
		return
	}
	msg.MediaURL = &url
}

// audit appends a communication log entry. An empty detail means success.
func (d *OutboundDispatcher) audit(ctx context.Context, tenant, receiver, kind, detail string) {
	entry := &domain.CommunicationLogEntry{
		Tenant:      tenant,
		Receiver:    sanitize.Truncate(receiver, 32),
		MessageKind: kind,
		Status:      domain.CommunicationSuccess,
	}
	if detail != "" {
		truncated := sanitize.Truncate(detail, maxErrorDetail)
		entry.Status = domain.CommunicationError
		entry.ErrorDetail = &truncated
	}

	if err := d.logs.Append(ctx, entry); err != nil {
		logger.Warnf("Failed to write communication log for %s: %v", receiver, err)
	}
}

func classify(err error) string {
	switch {
	case errors.Is(err, gateway.ErrUnreachable):
		return "WhatsApp gateway is unreachable"
	case errors.Is(err, gateway.ErrBadResponse):
		return "WhatsApp gateway returned an invalid response"
	default:
		return "Failed to send message"
	}
}

func errorResult(msg string) domain.SendResult {
	return domain.SendResult{Status: domain.SendStatusError, Error: msg}
}
