package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vapeonx/storefront/models"
	"github.com/vapeonx/storefront/session"
)

const (
	// AddressesKey is the session key (and cookie name) of the address book.
	AddressesKey = "addresses"
	// AddressesTTL is how long the address book is kept.
	AddressesTTL = 365 * 24 * time.Hour
)

// AddressStore keeps saved shipping addresses in the session. At most one
// address is the default.
type AddressStore struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewAddressStore creates an address store. A nil logger discards output.
func NewAddressStore(logger *zap.Logger) *AddressStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressStore{logger: logger, now: time.Now, newID: uuid.NewString}
}

// List returns the saved addresses, default first, then newest first.
func (s *AddressStore) List(ctx context.Context, kv session.Store) ([]models.ShippingAddress, error) {
	addresses, err := s.load(ctx, kv)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(addresses, func(i, j int) bool {
		if addresses[i].IsDefault != addresses[j].IsDefault {
			return addresses[i].IsDefault
		}
		return addresses[i].CreatedAt.After(addresses[j].CreatedAt)
	})
	return addresses, nil
}

// Get returns one saved address.
func (s *AddressStore) Get(ctx context.Context, kv session.Store, id string) (*models.ShippingAddress, error) {
	const op = "addresses.get"
	if id == "" {
		return nil, newError(op, "", MsgAddressIDRequired, ErrMissingField)
	}
	addresses, err := s.load(ctx, kv)
	if err != nil {
		return nil, err
	}
	idx := indexAddress(addresses, id)
	if idx < 0 {
		return nil, newError(op, id, MsgAddressNotFound, ErrNotFound)
	}
	return &addresses[idx], nil
}

// Default returns the default address, or nil when none is marked.
func (s *AddressStore) Default(ctx context.Context, kv session.Store) (*models.ShippingAddress, error) {
	addresses, err := s.load(ctx, kv)
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i], nil
		}
	}
	return nil, nil
}

// Create saves a new address. The first address saved becomes the default.
func (s *AddressStore) Create(ctx context.Context, kv session.Store, input models.ShippingAddressInput) (*models.ShippingAddress, error) {
	const op = "addresses.create"
	addresses, err := s.load(ctx, kv)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	address := models.ShippingAddress{
		ID:        s.newID(),
		Label:     input.Label,
		Details:   input.Details,
		IsDefault: input.IsDefault || len(addresses) == 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if address.IsDefault {
		clearDefault(addresses)
	}
	addresses = append(addresses, address)

	if err := s.save(ctx, kv, op, addresses); err != nil {
		return nil, err
	}
	return &address, nil
}

// Update replaces the label, details and default flag of an address.
func (s *AddressStore) Update(ctx context.Context, kv session.Store, id string, input models.ShippingAddressInput) (*models.ShippingAddress, error) {
	const op = "addresses.update"
	if id == "" {
		return nil, newError(op, "", MsgAddressIDRequired, ErrMissingField)
	}
	addresses, err := s.load(ctx, kv)
	if err != nil {
		return nil, err
	}
	idx := indexAddress(addresses, id)
	if idx < 0 {
		return nil, newError(op, id, MsgAddressNotFound, ErrNotFound)
	}

	if input.IsDefault {
		clearDefault(addresses)
	}
	addresses[idx].Label = input.Label
	addresses[idx].Details = input.Details
	addresses[idx].IsDefault = input.IsDefault
	addresses[idx].UpdatedAt = s.now().UTC()

	if err := s.save(ctx, kv, op, addresses); err != nil {
		return nil, err
	}
	updated := addresses[idx]
	return &updated, nil
}

// Delete removes an address.
func (s *AddressStore) Delete(ctx context.Context, kv session.Store, id string) error {
	const op = "addresses.delete"
	if id == "" {
		return newError(op, "", MsgAddressIDRequired, ErrMissingField)
	}
	addresses, err := s.load(ctx, kv)
	if err != nil {
		return err
	}
	idx := indexAddress(addresses, id)
	if idx < 0 {
		return newError(op, id, MsgAddressNotFound, ErrNotFound)
	}
	addresses = append(addresses[:idx], addresses[idx+1:]...)
	return s.save(ctx, kv, op, addresses)
}

func (s *AddressStore) load(ctx context.Context, kv session.Store) ([]models.ShippingAddress, error) {
	raw, ok, err := kv.Get(ctx, AddressesKey)
	if errors.Is(err, session.ErrCorruptValue) {
		s.logger.Warn("discarding unreadable address book", zap.Error(err))
		return []models.ShippingAddress{}, nil
	}
	if err != nil {
		return nil, newError("addresses.load", "", "", err)
	}
	if !ok {
		return []models.ShippingAddress{}, nil
	}
	addresses, err := DecodeAddresses(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable address book", zap.Error(err))
		return []models.ShippingAddress{}, nil
	}
	return addresses, nil
}

func (s *AddressStore) save(ctx context.Context, kv session.Store, op string, addresses []models.ShippingAddress) error {
	raw, err := EncodeAddresses(addresses)
	if err != nil {
		return newError(op, "", "", err)
	}
	if err := kv.Set(ctx, AddressesKey, raw, AddressesTTL); err != nil {
		return newError(op, "", "", err)
	}
	return nil
}

func clearDefault(addresses []models.ShippingAddress) {
	for i := range addresses {
		addresses[i].IsDefault = false
	}
}

func indexAddress(addresses []models.ShippingAddress, id string) int {
	for i, a := range addresses {
		if a.ID == id {
			return i
		}
	}
	return -1
}
