package domain

const (
	EventConnectionUpdate = "connection.update"
	EventMessagesUpsert   = "messages.upsert"

	WebhookTokenHeader = "X-Webhook-Token"
)

// Real-time notification topics consumed by the UI.
const (
	TopicConnectionUpdate = "connection_update"
	TopicIncomingMessage  = "incoming_message"
)

type WebhookPayload struct {
	SessionID string           `json:"sessionId"`
	Event     string           `json:"event"`
	Status    string           `json:"status,omitempty"`
	Messages  []WebhookMessage `json:"messages,omitempty"`
}

type WebhookMessage struct {
	ID       string        `json:"id"`
	From     string        `json:"from"`
	Text     string        `json:"text"`
	PushName string        `json:"pushName,omitempty"`
	Media    *MediaPayload `json:"media,omitempty"`
}

type WebhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ConnectionNotification struct {
	Status    ConnectionStatus `json:"status"`
	SessionID string           `json:"sessionId"`
	Tenant    string           `json:"tenant,omitempty"`
}

// TenantKey scopes the notification for realtime listeners.
func (n ConnectionNotification) TenantKey() string { return n.Tenant }

type IncomingMessageNotification struct {
	From        string  `json:"from"`
	Text        string  `json:"text"`
	DisplayName string  `json:"displayName"`
	Media       *string `json:"media"`
	Tenant      string  `json:"tenant,omitempty"`
}

func (n IncomingMessageNotification) TenantKey() string { return n.Tenant }
