// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/cart"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/session"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/telegram"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// Validation errors, detected before any network call is made
var (
	ErrEmptyCart       = errors.New("checkout: cart is empty")
	ErrNameRequired    = errors.New("checkout: name is required")
	ErrPhoneRequired   = errors.New("checkout: phone is required")
	ErrAddressRequired = errors.New("checkout: address or location is required")
)

// ErrNoIdentity is returned when no user identity can be resolved at all
var ErrNoIdentity = errors.New("checkout: no user identity available")

// BackendAPI is the slice of the upstream API checkout needs
type BackendAPI interface {
	CreateOrGetUser(ctx context.Context, req backend.CreateUserRequest) (*backend.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID string) (*backend.User, error)
	CreateOrder(ctx context.Context, req backend.CreateOrderRequest) (*backend.Order, error)
	GetUserOrders(ctx context.Context, userID string) ([]backend.Order, error)
}

// Form carries the user-entered checkout fields
type Form struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Location string `json:"location"` // free-text "lat, lng"
}

// Service assembles and submits orders from the cart and checkout form
type Service struct {
	api BackendAPI
	kv  *storage.Store
	log *logrus.Logger
}

// NewService creates a new checkout service
func NewService(api BackendAPI, kv *storage.Store, log *logrus.Logger) *Service {
	return &Service{
		api: api,
		kv:  kv,
		log: log,
	}
}

// Submit validates the form, resolves the user identity, creates or fetches
// the upstream user record and submits the order. On success the contact
// fields are saved as the new checkout defaults and the cart is cleared. On
// any failure the cart is left untouched so the user can retry.
func (s *Service) Submit(ctx context.Context, sessionID string, eng *cart.Engine, tgUser *telegram.User, form Form) (*backend.Order, error) {
	if len(eng.Lines()) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validate(form); err != nil {
		return nil, err
	}

	// Identity: authenticated telegram id when present, else an identifier
	// synthesized from the phone number. The synthesized form must stay
	// stable for upstream compatibility.
	telegramID := SynthesizeTelegramID(form.Phone)
	if tgUser != nil {
		telegramID = tgUser.TelegramID()
	}

	user, err := s.api.CreateOrGetUser(ctx, backend.CreateUserRequest{
		TelegramID: telegramID,
		Name:       form.Name,
		Phone:      form.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	lines := eng.Lines()
	items := make([]backend.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = backend.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
	}

	order, err := s.api.CreateOrder(ctx, backend.CreateOrderRequest{
		UserID:     user.ID,
		StoreID:    eng.StoreID(),
		Items:      items,
		TotalPrice: eng.TotalPrice(),
		Address:    optional(form.Address),
		Location:   optional(form.Location),
	})
	if err != nil {
		return nil, err
	}

	s.kv.Set(ctx, storage.SessionKey(sessionID, storage.KeyUserInfo), session.UserInfo{
		Name:     form.Name,
		Phone:    form.Phone,
		Address:  form.Address,
		Location: form.Location,
	})
	eng.Clear(ctx)

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"store_id": order.StoreID,
	}).Info("Order submitted")

	return order, nil
}

// ResolveUser resolves the upstream user record for the session, used by
// the order history flow. An authenticated telegram user is looked up by
// id, falling back to create-or-get when the upstream has no record yet.
// Without an authenticated identity the saved checkout contact info is used
// with a synthesized phone identifier.
func (s *Service) ResolveUser(ctx context.Context, sessionID string, tgUser *telegram.User) (*backend.User, error) {
	if tgUser != nil {
		user, err := s.api.GetUserByTelegramID(ctx, tgUser.TelegramID())
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, backend.ErrUserNotFound) {
			return nil, err
		}
		return s.api.CreateOrGetUser(ctx, backend.CreateUserRequest{
			TelegramID: tgUser.TelegramID(),
			Name:       tgUser.FullName(),
			Phone:      tgUser.PhoneNumber,
		})
	}

	var saved session.UserInfo
	if !s.kv.Get(ctx, storage.SessionKey(sessionID, storage.KeyUserInfo), &saved) || saved.Phone == "" {
		return nil, ErrNoIdentity
	}

	return s.api.CreateOrGetUser(ctx, backend.CreateUserRequest{
		TelegramID: SynthesizeTelegramID(saved.Phone),
		Name:       saved.Name,
		Phone:      saved.Phone,
	})
}

// Orders returns the resolved user's order history
func (s *Service) Orders(ctx context.Context, sessionID string, tgUser *telegram.User) ([]backend.Order, error) {
	user, err := s.ResolveUser(ctx, sessionID, tgUser)
	if err != nil {
		return nil, err
	}
	return s.api.GetUserOrders(ctx, user.ID)
}

// SynthesizeTelegramID derives the degraded-identity identifier from a
// phone number: "phone_" plus the phone with everything except digits and
// "+" stripped. The stripping rule is fixed for upstream compatibility.
func SynthesizeTelegramID(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' {
			return r
		}
		return -1
	}, phone)
	return "phone_" + cleaned
}

func validate(form Form) error {
	if strings.TrimSpace(form.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(form.Phone) == "" {
		return ErrPhoneRequired
	}
	if strings.TrimSpace(form.Address) == "" && strings.TrimSpace(form.Location) == "" {
		return ErrAddressRequired
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
