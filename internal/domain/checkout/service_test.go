// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/cart"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/session"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/telegram"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

const testSession = "sess-1"

// fakeAPI counts upstream calls and records the last requests
type fakeAPI struct {
	userCalls  int
	orderCalls int

	lastUserReq  backend.CreateUserRequest
	lastOrderReq backend.CreateOrderRequest

	userByTelegramID *backend.User
	userErr          error
	orderErr         error
	orders           []backend.Order
}

func (f *fakeAPI) CreateOrGetUser(ctx context.Context, req backend.CreateUserRequest) (*backend.User, error) {
	f.userCalls++
	f.lastUserReq = req
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &backend.User{ID: "user-1", TelegramID: req.TelegramID, Name: req.Name}, nil
}

func (f *fakeAPI) GetUserByTelegramID(ctx context.Context, telegramID string) (*backend.User, error) {
	if f.userByTelegramID == nil {
		return nil, backend.ErrUserNotFound
	}
	return f.userByTelegramID, nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, req backend.CreateOrderRequest) (*backend.Order, error) {
	f.orderCalls++
	f.lastOrderReq = req
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return &backend.Order{ID: "order-1", UserID: req.UserID, StoreID: req.StoreID, Items: req.Items, TotalPrice: req.TotalPrice}, nil
}

func (f *fakeAPI) GetUserOrders(ctx context.Context, userID string) ([]backend.Order, error) {
	return f.orders, nil
}

func newTestStore() *storage.Store {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return storage.NewStore(storage.NewMemoryBackend(), log)
}

func newTestService(api BackendAPI, kv *storage.Store) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(api, kv, log)
}

func loadedCart(t *testing.T, kv *storage.Store) *cart.Engine {
	t.Helper()
	ctx := context.Background()

	kv.Set(ctx, storage.SessionKey(testSession, storage.KeyStoreInfo), session.StoreInfo{ID: "store-1", Name: "Test Store"})

	eng := cart.Load(ctx, kv, testSession)
	added := eng.Add(ctx, &backend.Product{
		ID:   "p1",
		Name: "Milk",
		Inventories: []backend.Inventory{
			{Price: 12000, Currency: "UZS", StockCount: 10},
		},
	}, 2)
	require.True(t, added)
	return eng
}

func validForm() Form {
	return Form{
		Name:    "Ali Valiyev",
		Phone:   "+998 90 123-45-67",
		Address: "Tashkent, Chilonzor 5",
	}
}

func TestSubmitValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Form)
		wantErr error
	}{
		{"missing name", func(f *Form) { f.Name = "  " }, ErrNameRequired},
		{"missing phone", func(f *Form) { f.Phone = "" }, ErrPhoneRequired},
		{"missing address and location", func(f *Form) { f.Address = ""; f.Location = " " }, ErrAddressRequired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{}
			kv := newTestStore()
			svc := newTestService(api, kv)
			eng := loadedCart(t, kv)

			form := validForm()
			tc.mutate(&form)

			_, err := svc.Submit(context.Background(), testSession, eng, nil, form)
			assert.ErrorIs(t, err, tc.wantErr)

			// Validation failures never reach the upstream
			assert.Equal(t, 0, api.userCalls)
			assert.Equal(t, 0, api.orderCalls)
			assert.Len(t, eng.Lines(), 1)
		})
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)
	eng := cart.Load(context.Background(), kv, testSession)

	_, err := svc.Submit(context.Background(), testSession, eng, nil, validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, api.userCalls)
}

func TestSubmitLocationOnlyAddressIsValid(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)
	eng := loadedCart(t, kv)

	form := validForm()
	form.Address = ""
	form.Location = "41.2995, 69.2401"

	order, err := svc.Submit(context.Background(), testSession, eng, nil, form)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Nil(t, api.lastOrderReq.Address)
	require.NotNil(t, api.lastOrderReq.Location)
	assert.Equal(t, "41.2995, 69.2401", *api.lastOrderReq.Location)
}

func TestSubmitSynthesizesIdentityFromPhone(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)
	eng := loadedCart(t, kv)

	_, err := svc.Submit(context.Background(), testSession, eng, nil, validForm())
	require.NoError(t, err)

	assert.Equal(t, "phone_+998901234567", api.lastUserReq.TelegramID)
}

func TestSubmitPrefersTelegramIdentity(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)
	eng := loadedCart(t, kv)

	tgUser := &telegram.User{ID: 12345, FirstName: "Ali"}

	_, err := svc.Submit(context.Background(), testSession, eng, tgUser, validForm())
	require.NoError(t, err)

	assert.Equal(t, "12345", api.lastUserReq.TelegramID)
}

func TestSubmitSuccessClearsCartAndSavesContactInfo(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)
	eng := loadedCart(t, kv)
	ctx := context.Background()

	order, err := svc.Submit(ctx, testSession, eng, nil, validForm())
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)

	assert.Empty(t, eng.Lines())

	// Contact fields become the new checkout defaults
	var saved session.UserInfo
	require.True(t, kv.Get(ctx, storage.SessionKey(testSession, storage.KeyUserInfo), &saved))
	assert.Equal(t, "Ali Valiyev", saved.Name)
	assert.Equal(t, "+998 90 123-45-67", saved.Phone)

	// And the cart snapshot in storage is empty too
	fresh := cart.Load(ctx, kv, testSession)
	assert.Empty(t, fresh.Lines())
}

func TestSubmitBuildsOrderFromCart(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)
	eng := loadedCart(t, kv)

	_, err := svc.Submit(context.Background(), testSession, eng, nil, validForm())
	require.NoError(t, err)

	req := api.lastOrderReq
	assert.Equal(t, "user-1", req.UserID)
	assert.Equal(t, "store-1", req.StoreID)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "p1", req.Items[0].ProductID)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, 12000.0, req.Items[0].Price)
	assert.Equal(t, 24000.0, req.TotalPrice)
}

func TestSubmitFailureLeavesCartUntouched(t *testing.T) {
	api := &fakeAPI{orderErr: &backend.APIError{StatusCode: 409, Message: "Out of stock"}}
	kv := newTestStore()
	svc := newTestService(api, kv)
	eng := loadedCart(t, kv)
	ctx := context.Background()

	_, err := svc.Submit(ctx, testSession, eng, nil, validForm())
	require.Error(t, err)
	assert.Equal(t, "Out of stock", err.Error())

	assert.Len(t, eng.Lines(), 1)

	// No contact info is saved on failure
	var saved session.UserInfo
	assert.False(t, kv.Get(ctx, storage.SessionKey(testSession, storage.KeyUserInfo), &saved))
}

func TestResolveUserTelegramFallsBackToCreate(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)

	tgUser := &telegram.User{ID: 777, FirstName: "Ali", LastName: "Valiyev"}

	user, err := svc.ResolveUser(context.Background(), testSession, tgUser)
	require.NoError(t, err)
	assert.Equal(t, "777", user.TelegramID)
	assert.Equal(t, 1, api.userCalls)
	assert.Equal(t, "Ali Valiyev", api.lastUserReq.Name)
}

func TestResolveUserTelegramExisting(t *testing.T) {
	api := &fakeAPI{userByTelegramID: &backend.User{ID: "user-9", TelegramID: "777"}}
	kv := newTestStore()
	svc := newTestService(api, kv)

	user, err := svc.ResolveUser(context.Background(), testSession, &telegram.User{ID: 777, FirstName: "Ali"})
	require.NoError(t, err)
	assert.Equal(t, "user-9", user.ID)
	assert.Equal(t, 0, api.userCalls)
}

func TestResolveUserFromSavedContactInfo(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)
	ctx := context.Background()

	kv.Set(ctx, storage.SessionKey(testSession, storage.KeyUserInfo), session.UserInfo{
		Name:  "Ali Valiyev",
		Phone: "+998901234567",
	})

	user, err := svc.ResolveUser(ctx, testSession, nil)
	require.NoError(t, err)
	assert.Equal(t, "phone_+998901234567", user.TelegramID)
}

func TestResolveUserNoIdentity(t *testing.T) {
	api := &fakeAPI{}
	kv := newTestStore()
	svc := newTestService(api, kv)

	_, err := svc.ResolveUser(context.Background(), testSession, nil)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestSynthesizeTelegramID(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"+998 90 123-45-67", "phone_+998901234567"},
		{"998901234567", "phone_998901234567"},
		{"(90) 123 45 67", "phone_901234567"},
		{"", "phone_"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, SynthesizeTelegramID(tc.phone))
	}
}
