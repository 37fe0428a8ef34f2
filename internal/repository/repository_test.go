package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/database"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

func strPtr(s string) *string { return &s }

func TestMessageRepository_InsertAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(newTestDB(t))

	msg := &domain.Message{
		GatewayMessageID:  strPtr("ABC1"),
		Direction:         domain.DirectionOutbound,
		CounterpartyPhone: "14155550100",
		Body:              "Hello",
		Tenant:            "Acme Co",
	}
	id, err := repo.Insert(ctx, msg)
	require.NoError(t, err)
	assert.Equal(t, id, msg.ID)

	got, err := repo.GetByGatewayID(ctx, "ABC1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, domain.DirectionOutbound, got.Direction)
	assert.Nil(t, got.MediaURL)

	_, err = repo.Insert(ctx, &domain.Message{
		GatewayMessageID:  strPtr("ABC1"),
		Direction:         domain.DirectionOutbound,
		CounterpartyPhone: "14155550100",
		Tenant:            "Acme Co",
	})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	missing, err := repo.GetByGatewayID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageRepository_NullGatewayIDsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(newTestDB(t))

	for i := 0; i < 2; i++ {
		_, err := repo.Insert(ctx, &domain.Message{
			Direction:         domain.DirectionInbound,
			CounterpartyPhone: "14155550100",
			Body:              "same",
			Tenant:            "Acme Co",
		})
		require.NoError(t, err)
	}
}

func TestMessageRepository_SetMediaURL(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(newTestDB(t))

	id, err := repo.Insert(ctx, &domain.Message{
		Direction: domain.DirectionInbound, CounterpartyPhone: "14155550100", Tenant: "t",
	})
	require.NoError(t, err)

	changed, err := repo.SetMediaURL(ctx, id, "/files/a.jpg", true)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.SetMediaURL(ctx, id, "/files/b.jpg", true)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = repo.SetMediaURL(ctx, id, "/files/c.jpg", false)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.MediaURL)
	assert.Equal(t, "/files/c.jpg", *got.MediaURL)
}

func TestMessageRepository_RecentConversationsOneRowPerPhone(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(newTestDB(t))
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seed := []struct {
		phone string
		body  string
		at    time.Time
	}{
		{"14155550100", "first", base},
		{"905551234567", "merhaba", base.Add(1 * time.Minute)},
		{"14155550100", "second", base.Add(2 * time.Minute)},
		{"447700900123", "hello", base.Add(3 * time.Minute)},
		{"905551234567", "nasilsin", base.Add(4 * time.Minute)},
	}
	for _, s := range seed {
		_, err := repo.Insert(ctx, &domain.Message{
			Direction: domain.DirectionInbound, CounterpartyPhone: s.phone,
			Body: s.body, Tenant: "Acme Co", CreatedAt: s.at,
		})
		require.NoError(t, err)
	}

	got, err := repo.RecentConversations(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "905551234567", got[0].Phone)
	assert.Equal(t, "nasilsin", got[0].LastMessage)
	assert.Equal(t, "447700900123", got[1].Phone)
	assert.Equal(t, "14155550100", got[2].Phone)
	assert.Equal(t, "second", got[2].LastMessage)
	assert.True(t, got[2].LastMessageAt.Equal(base.Add(2*time.Minute)))

	limited, err := repo.RecentConversations(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	other, err := repo.RecentConversations(ctx, "Other Co", 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMessageRepository_HistoryAscendingAndPaginated(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(newTestDB(t))
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, body := range []string{"one", "two", "three"} {
		_, err := repo.Insert(ctx, &domain.Message{
			Direction: domain.DirectionInbound, CounterpartyPhone: "14155550100",
			Body: body, Tenant: "t", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, &domain.Message{
		Direction: domain.DirectionInbound, CounterpartyPhone: "905551234567", Body: "x", Tenant: "t", CreatedAt: base,
	})
	require.NoError(t, err)

	all, err := repo.History(ctx, "4155550100", 500, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].Body)
	assert.Equal(t, "three", all[2].Body)

	page, err := repo.History(ctx, "14155550100", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "two", page[0].Body)
}

func TestMessageRepository_GetStats(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(newTestDB(t))

	_, err := repo.Insert(ctx, &domain.Message{Direction: domain.DirectionInbound, CounterpartyPhone: "1", Tenant: "t", MediaURL: strPtr("/files/x")})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, &domain.Message{Direction: domain.DirectionOutbound, CounterpartyPhone: "1", Tenant: "t"})
	require.NoError(t, err)

	in, out, media, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, in)
	assert.EqualValues(t, 1, out)
	assert.EqualValues(t, 1, media)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestDB(t))

	_, err := repo.GetByTenant(ctx, "Acme Co")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Create(ctx, &domain.Session{SessionID: "Acme_Co", Tenant: "Acme Co", IntegrationEnabled: true}))

	set, err := repo.SetWebhookSecretIfEmpty(ctx, "Acme_Co", "s3cret")
	require.NoError(t, err)
	assert.True(t, set)

	set, err = repo.SetWebhookSecretIfEmpty(ctx, "Acme_Co", "other")
	require.NoError(t, err)
	assert.False(t, set)

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, "Acme_Co", domain.StatusConnected, &at))
	require.NoError(t, repo.UpdateStatus(ctx, "Acme_Co", domain.StatusDisconnected, nil))

	got, err := repo.GetBySessionID(ctx, "Acme_Co")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got.WebhookSecret)
	assert.Equal(t, domain.StatusDisconnected, got.ConnectionStatus)
	require.NotNil(t, got.LastConnectedAt)
	assert.True(t, got.LastConnectedAt.Equal(at))
	assert.True(t, got.IntegrationEnabled)

	require.NoError(t, repo.UpdateSettings(ctx, "Acme_Co", "http://gw:3000", false))
	got, err = repo.GetByTenant(ctx, "Acme Co")
	require.NoError(t, err)
	assert.False(t, got.IntegrationEnabled)
	assert.Equal(t, "http://gw:3000", got.GatewayURL)

	err = repo.UpdateStatus(ctx, "missing", domain.StatusConnected, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommunicationLogRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewCommunicationLogRepository(newTestDB(t))

	require.NoError(t, repo.Append(ctx, &domain.CommunicationLogEntry{
		Tenant: "Acme Co", Receiver: "14155550100", MessageKind: domain.KindChat, Status: domain.CommunicationSuccess,
	}))
	require.NoError(t, repo.Append(ctx, &domain.CommunicationLogEntry{
		Tenant: "Acme Co", Receiver: "14155550100", MessageKind: domain.KindChat,
		Status: domain.CommunicationError, ErrorDetail: strPtr("boom"),
	}))

	entries, err := repo.ListByTenant(ctx, "Acme Co", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.CommunicationError, entries[0].Status)
	require.NotNil(t, entries[0].ErrorDetail)
	assert.Equal(t, "boom", *entries[0].ErrorDetail)

	page, total, err := repo.GetPage(ctx, "Acme Co", 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, domain.CommunicationSuccess, page[0].Status)
}

func TestContactRepository_FindAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, domain.Contact{ID: "C-001", FullName: "Jane Doe", MobileNo: "+1 415 555 0100"}))
	require.NoError(t, repo.Upsert(ctx, domain.Contact{ID: "C-002", FullName: "Ali Veli", MobileNo: "905551234567"}))
	require.NoError(t, repo.Upsert(ctx, domain.Contact{ID: "C-003", FullName: "No Phone"}))
	require.NoError(t, repo.Upsert(ctx, domain.Contact{ID: "C-002", FullName: "Ali Veli", MobileNo: "905551234568"}))

	byName, err := repo.FindByName(ctx, "Jane Doe")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "C-001", byName.ID)

	byPhone, err := repo.FindByPhone(ctx, "905551234568")
	require.NoError(t, err)
	require.NotNil(t, byPhone)
	assert.Equal(t, "C-002", byPhone.ID)

	none, err := repo.FindByPhone(ctx, "905551234567")
	require.NoError(t, err)
	assert.Nil(t, none)

	found, err := repo.Search(ctx, "Phone", 10)
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = repo.Search(ctx, "a", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestContactRepository_PrimaryContactPhone(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, domain.Contact{ID: "CUST-1", FullName: "Acme Buyer", MobileNo: "+90 555 000 0001", Kind: ContactKindCustomer}))
	require.NoError(t, repo.Upsert(ctx, domain.Contact{ID: "C-10", FullName: "Secondary", MobileNo: "905550000002", Customer: "CUST-1"}))
	require.NoError(t, repo.Upsert(ctx, domain.Contact{ID: "C-11", FullName: "Primary", MobileNo: "905550000003", Customer: "CUST-1", IsPrimary: true}))
	require.NoError(t, repo.Upsert(ctx, domain.Contact{ID: "CUST-2", FullName: "Solo", MobileNo: "905550000004", Kind: ContactKindCustomer}))

	phone, ok, err := repo.PrimaryContactPhone(ctx, "CUST-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "905550000003", phone)

	phone, ok, err = repo.PrimaryContactPhone(ctx, "CUST-2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "905550000004", phone)

	_, ok, err = repo.PrimaryContactPhone(ctx, "CUST-404")
	require.NoError(t, err)
	assert.False(t, ok)
}
