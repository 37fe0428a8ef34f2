package service

import (
	"context"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/phone"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/sanitize"
)

const (
	minContactQuery     = 2
	defaultContactLimit = 20
	maxContactLimit     = 50
)

type contactSearcher interface {
	Search(ctx context.Context, q string, limit int) ([]domain.Contact, error)
}

// ContactDirectory answers the chat UI's contact picker.
type ContactDirectory struct {
	repo contactSearcher
}

func NewContactDirectory(repo contactSearcher) *ContactDirectory {
	return &ContactDirectory{repo: repo}
}

// Search returns contacts matching q by name or number, one per normalized
// phone number. Queries shorter than two characters match nothing.
func (d *ContactDirectory) Search(ctx context.Context, q string, limit int) ([]domain.Contact, error) {
	q = sanitize.Message(q)
	if len([]rune(q)) < minContactQuery {
		return []domain.Contact{}, nil
	}

	if limit <= 0 {
		limit = defaultContactLimit
	}
	if limit > maxContactLimit {
		limit = maxContactLimit
	}

	// over-fetch so duplicates don't starve the page
	found, err := d.repo.Search(ctx, q, limit*2)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(found))
	out := make([]domain.Contact, 0, limit)
	for _, c := range found {
		normalized, err := phone.Normalize(c.MobileNo)
		if err != nil {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}

		c.MobileNo = normalized
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}

	return out, nil
}
