package domain

import "time"

type Direction string

const (
	DirectionInbound  Direction = "Inbound"
	DirectionOutbound Direction = "Outbound"
)

// Message is a single payload delivered to or received from the gateway.
// CounterpartyPhone is the sender for inbound and the receiver for outbound.
type Message struct {
	ID                int64     `db:"id" json:"id"`
	GatewayMessageID  *string   `db:"gateway_message_id" json:"gatewayMessageId,omitempty"`
	Direction         Direction `db:"direction" json:"direction"`
	CounterpartyPhone string    `db:"counterparty_phone" json:"counterpartyPhone"`
	DisplayName       *string   `db:"display_name" json:"displayName,omitempty"`
	Body              string    `db:"body" json:"body"`
	Tenant            string    `db:"tenant" json:"tenant"`
	LinkedContact     *string   `db:"linked_contact" json:"linkedContact,omitempty"`
	MediaURL          *string   `db:"media_url" json:"mediaUrl,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// MessageEvent is the input to the message store. An empty GatewayMessageID
// disables deduplication for that event.
type MessageEvent struct {
	GatewayMessageID string
	Direction        Direction
	Phone            string
	DisplayName      string
	Body             string
	Tenant           string
}

type ConversationSummary struct {
	Phone         string    `json:"phone"`
	DisplayName   string    `json:"displayName"`
	LastMessage   string    `json:"lastMessage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	Direction     Direction `json:"direction"`
}

// MediaPayload is the base64 attachment shape shared with the gateway.
type MediaPayload struct {
	Data     string `json:"data"`
	Filename string `json:"filename,omitempty"`
	Mimetype string `json:"mimetype,omitempty"`
}

type CommunicationStatus string

const (
	CommunicationSuccess CommunicationStatus = "Success"
	CommunicationError   CommunicationStatus = "Error"
)

const (
	KindChat                = "Chat"
	KindInvoiceNotification = "Invoice Notification"
	KindDocument            = "Document"
	KindVoiceNote           = "Voice Note"
)

// CommunicationLogEntry is a write-once audit record of a send attempt.
type CommunicationLogEntry struct {
	ID          int64               `db:"id" json:"id"`
	Tenant      string              `db:"tenant" json:"tenant"`
	Receiver    string              `db:"receiver" json:"receiver"`
	MessageKind string              `db:"message_kind" json:"messageKind"`
	Status      CommunicationStatus `db:"status" json:"status"`
	ErrorDetail *string             `db:"error_detail" json:"errorDetail,omitempty"`
	CreatedAt   time.Time           `db:"created_at" json:"createdAt"`
}

const (
	SendStatusSent  = "sent"
	SendStatusError = "error"

	// SendErrorReconnecting is returned while a reconnect task is outstanding.
	SendErrorReconnecting = "reconnecting"
)

type SendRequest struct {
	Tenant   string
	Receiver string
	Body     string
	Media    *MediaPayload
	Kind     string
}

type SendResult struct {
	Status           string `json:"status"`
	Error            string `json:"error,omitempty"`
	MessageID        int64  `json:"messageId,omitempty"`
	GatewayMessageID string `json:"gatewayMessageId,omitempty"`
}

func (r SendResult) Sent() bool {
	return r.Status == SendStatusSent
}
