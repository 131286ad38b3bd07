// internal/domain/session/service_test.go
package session

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

const testSession = "sess-1"

func newTestService() *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(storage.NewStore(storage.NewMemoryBackend(), log), log)
}

func TestBootstrapFreshSession(t *testing.T) {
	svc := newTestService()

	state := svc.Bootstrap(context.Background(), testSession)
	assert.False(t, state.Ready)
	assert.Nil(t, state.Store)
}

func TestBootstrapAfterStoreSelection(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.SelectStore(ctx, testSession, StoreInfo{ID: "store-1", Name: "Chilonzor", Address: "Tashkent"})

	state := svc.Bootstrap(ctx, testSession)
	assert.True(t, state.Ready)
	require.NotNil(t, state.Store)
	assert.Equal(t, "store-1", state.Store.ID)
	assert.Equal(t, "Chilonzor", state.Store.Name)
}

func TestBootstrapIsolatedPerSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.SelectStore(ctx, "sess-a", StoreInfo{ID: "store-1", Name: "A"})

	assert.True(t, svc.Bootstrap(ctx, "sess-a").Ready)
	assert.False(t, svc.Bootstrap(ctx, "sess-b").Ready)
}

func TestLeaveStore(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.SelectStore(ctx, testSession, StoreInfo{ID: "store-1", Name: "Chilonzor"})
	svc.LeaveStore(ctx, testSession)

	assert.Nil(t, svc.SelectedStore(ctx, testSession))
	assert.False(t, svc.Bootstrap(ctx, testSession).Ready)
}

func TestSelectedStoreIgnoresEmptyRecord(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.SelectStore(ctx, testSession, StoreInfo{})
	assert.Nil(t, svc.SelectedStore(ctx, testSession))
}

func TestSavedUserInfo(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	assert.Nil(t, svc.SavedUserInfo(ctx, testSession))

	svc.kv.Set(ctx, storage.SessionKey(testSession, storage.KeyUserInfo), UserInfo{
		Name:  "Ali",
		Phone: "+998901234567",
	})

	info := svc.SavedUserInfo(ctx, testSession)
	require.NotNil(t, info)
	assert.Equal(t, "Ali", info.Name)
}

func TestSaveAccount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	err := svc.SaveAccount(ctx, testSession, AccountInfo{
		Name:    "Ali Valiyev",
		Phone:   "+998901234567",
		Address: "Tashkent",
	})
	require.NoError(t, err)

	account := svc.Account(ctx, testSession)
	require.NotNil(t, account)
	assert.Equal(t, "Ali Valiyev", account.Name)
}

func TestSaveAccountValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	err := svc.SaveAccount(ctx, testSession, AccountInfo{Name: "  ", Phone: "+998901234567"})
	assert.ErrorIs(t, err, ErrNameRequired)

	err = svc.SaveAccount(ctx, testSession, AccountInfo{Name: "Ali", Phone: ""})
	assert.ErrorIs(t, err, ErrPhoneRequired)

	// Nothing is persisted on validation failure
	assert.Nil(t, svc.Account(ctx, testSession))
}
