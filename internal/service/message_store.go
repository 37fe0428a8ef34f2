package service

import (
	"context"
	"fmt"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/database"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/phone"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/sanitize"
)

// MediaPolicy decides what AttachMedia does when a message already has media.
type MediaPolicy string

const (
	MediaPolicyReplace   MediaPolicy = "replace"
	MediaPolicyKeepFirst MediaPolicy = "keep_first"
)

const (
	maxConversations     = 100
	defaultConversations = 50
	maxHistory           = 500
	defaultHistory       = 100
	conversationPreview  = 100
)

type messageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	GetByGatewayID(ctx context.Context, gatewayID string) (*domain.Message, error)
	SetMediaURL(ctx context.Context, id int64, url string, onlyIfEmpty bool) (bool, error)
	RecentConversations(ctx context.Context, tenant string, limit int) ([]domain.ConversationSummary, error)
	History(ctx context.Context, phone string, limit, offset int) ([]domain.Message, error)
	GetStats(ctx context.Context) (inbound, outbound, withMedia int64, err error)
}

type contactLookup interface {
	FindByName(ctx context.Context, name string) (*domain.Contact, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Contact, error)
}

// MessageStore persists inbound and outbound messages idempotently.
type MessageStore struct {
	repo     messageRepository
	contacts contactLookup
	policy   MediaPolicy
}

func NewMessageStore(repo messageRepository, contacts contactLookup, policy MediaPolicy) *MessageStore {
	if policy != MediaPolicyKeepFirst {
		policy = MediaPolicyReplace
	}
	return &MessageStore{repo: repo, contacts: contacts, policy: policy}
}

// Save stores ev, or returns the already stored message when ev carries a
// gateway id that was seen before.
func (s *MessageStore) Save(ctx context.Context, ev domain.MessageEvent) (*domain.Message, error) {
	if ev.GatewayMessageID != "" {
		existing, err := s.repo.GetByGatewayID(ctx, ev.GatewayMessageID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			logger.Debugf("Message %s already stored as %d", ev.GatewayMessageID, existing.ID)
			return existing, nil
		}
	}

	normalized, err := phone.Normalize(phone.StripJID(ev.Phone))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPhone, ev.Phone)
	}

	msg := &domain.Message{
		Direction:         ev.Direction,
		CounterpartyPhone: normalized,
		Body:              sanitize.Message(ev.Body),
		Tenant:            ev.Tenant,
	}
	if ev.GatewayMessageID != "" {
		id := ev.GatewayMessageID
		msg.GatewayMessageID = &id
	}
	if ev.DisplayName != "" {
		name := ev.DisplayName
		msg.DisplayName = &name
	}
	if contact := s.resolveContact(ctx, ev.DisplayName, normalized); contact != "" {
		msg.LinkedContact = &contact
	}

	if _, err := s.repo.Insert(ctx, msg); err != nil {
		if ev.GatewayMessageID != "" && database.IsUniqueViolation(err) {
			existing, getErr := s.repo.GetByGatewayID(ctx, ev.GatewayMessageID)
			if getErr != nil {
				return nil, getErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	return msg, nil
}

// resolveContact tries the display name first, then the phone number.
// Lookup failures only cost the link.
func (s *MessageStore) resolveContact(ctx context.Context, displayName, normalized string) string {
	if s.contacts == nil {
		return ""
	}

	if displayName != "" {
		c, err := s.contacts.FindByName(ctx, displayName)
		if err != nil {
			logger.Warnf("Contact lookup by name failed: %v", err)
		} else if c != nil {
			return c.ID
		}
	}

	c, err := s.contacts.FindByPhone(ctx, normalized)
	if err != nil {
		logger.Warnf("Contact lookup by phone failed: %v", err)
		return ""
	}
	if c != nil {
		return c.ID
	}
	return ""
}

// AttachMedia records the media reference of a stored message according to
// the store's MediaPolicy.
func (s *MessageStore) AttachMedia(ctx context.Context, messageID int64, blobRef string) error {
	changed, err := s.repo.SetMediaURL(ctx, messageID, blobRef, s.policy == MediaPolicyKeepFirst)
	if err != nil {
		return err
	}
	if changed {
		return nil
	}

	existing, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("message %d: %w", messageID, domain.ErrNotFound)
	}

	return nil
}

func (s *MessageStore) Get(ctx context.Context, messageID int64) (*domain.Message, error) {
	msg, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("message %d: %w", messageID, domain.ErrNotFound)
	}
	return msg, nil
}

// RecentConversations returns one summary per counterparty, newest first.
func (s *MessageStore) RecentConversations(ctx context.Context, tenant string, limit int) ([]domain.ConversationSummary, error) {
	if limit <= 0 {
		limit = defaultConversations
	}
	if limit > maxConversations {
		limit = maxConversations
	}

	summaries, err := s.repo.RecentConversations(ctx, tenant, limit)
	if err != nil {
		return nil, err
	}

	for i := range summaries {
		summaries[i].LastMessage = sanitize.Truncate(summaries[i].LastMessage, conversationPreview)
		if summaries[i].DisplayName != "" || s.contacts == nil {
			continue
		}
		if c, err := s.contacts.FindByPhone(ctx, summaries[i].Phone); err == nil && c != nil && c.FullName != "" {
			summaries[i].DisplayName = c.FullName
		} else {
			summaries[i].DisplayName = summaries[i].Phone
		}
	}

	return summaries, nil
}

// History pages through a counterparty's messages in chronological order.
func (s *MessageStore) History(ctx context.Context, rawPhone string, limit, offset int) ([]domain.Message, error) {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPhone, rawPhone)
	}

	if limit <= 0 {
		limit = defaultHistory
	}
	if limit > maxHistory {
		limit = maxHistory
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.History(ctx, normalized, limit, offset)
}

type MessageStats struct {
	Inbound   int64 `json:"inbound"`
	Outbound  int64 `json:"outbound"`
	WithMedia int64 `json:"withMedia"`
}

func (s *MessageStore) Stats(ctx context.Context) (*MessageStats, error) {
	in, out, media, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	return &MessageStats{Inbound: in, Outbound: out, WithMedia: media}, nil
}
