package gateway

import "github.com/onurcolak/whatsapp-session-bridge/internal/domain"

// NotConnectedError is the error text the gateway returns with HTTP 400 when
// the addressed session has no live connection.
const NotConnectedError = "Session not connected"

type StartRequest struct {
	SessionID    string `json:"sessionId"`
	WebhookURL   string `json:"webhookUrl"`
	WebhookToken string `json:"webhookToken"`
}

// StartResult carries either a status or a QR payload to be scanned.
type StartResult struct {
	Status string `json:"status,omitempty"`
	QR     string `json:"qr,omitempty"`
}

type SendRequest struct {
	SessionID string               `json:"sessionId"`
	Receiver  string               `json:"receiver"`
	Message   string               `json:"message"`
	Media     *domain.MediaPayload `json:"media,omitempty"`
}

type MessageKey struct {
	ID        string `json:"id"`
	RemoteJID string `json:"remoteJid,omitempty"`
	FromMe    bool   `json:"fromMe,omitempty"`
}

type SendMeta struct {
	Key MessageKey `json:"key"`
}

// SendResult is an application-level outcome. Status is "sent" or "error";
// HTTPStatus is the code the gateway answered with.
type SendResult struct {
	Status     string    `json:"status"`
	Result     *SendMeta `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	HTTPStatus int       `json:"-"`
}

func (r *SendResult) Sent() bool { return r.Status == "sent" }

// NotConnected reports the gateway's "session not connected" rejection.
func (r *SendResult) NotConnected() bool {
	return r.HTTPStatus == 400 && r.Error == NotConnectedError
}

// MessageID returns the gateway-assigned id of a sent message, if any.
func (r *SendResult) MessageID() string {
	if r.Result == nil {
		return ""
	}
	return r.Result.Key.ID
}

type StatusResult struct {
	Status string `json:"status"`
}

type ContactInfoRequest struct {
	SessionID string `json:"sessionId"`
	Phone     string `json:"phone"`
}

type EndResult struct {
	Status string `json:"status"`
}
