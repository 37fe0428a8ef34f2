package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/internal/repository"
)

func TestContactDirectory_Search(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for _, c := range []domain.Contact{
		{ID: "C-1", FullName: "Jane Doe", MobileNo: "+1 415 555 0100", Kind: repository.ContactKindContact},
		{ID: "CUST-1", FullName: "Jane Doe Ltd", MobileNo: "14155550100", Kind: repository.ContactKindCustomer},
		{ID: "C-2", FullName: "Jane Roe", MobileNo: "14155550111", Kind: repository.ContactKindContact},
		{ID: "C-3", FullName: "Jane Broken", MobileNo: "123", Kind: repository.ContactKindContact},
	} {
		require.NoError(t, env.contacts.Upsert(ctx, c))
	}

	dir := NewContactDirectory(env.contacts)

	results, err := dir.Search(ctx, "Jane", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	phones := []string{results[0].MobileNo, results[1].MobileNo}
	assert.ElementsMatch(t, []string{"14155550100", "14155550111"}, phones)

	short, err := dir.Search(ctx, "J", 10)
	require.NoError(t, err)
	assert.Empty(t, short)

	one, err := dir.Search(ctx, "Jane", 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
