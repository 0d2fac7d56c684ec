package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"rocketshoes/internal/domain"
)

// StorageKey is the key under which the serialized cart is persisted.
const StorageKey = "@RocketShoes:cart"

// Op names the cart operation that produced an error.
type Op string

const (
	OpAdd          Op = "add"
	OpRemove       Op = "remove"
	OpUpdateAmount Op = "update_amount"
)

// OpError reports a failed cart operation. Err is one of the domain sentinel
// errors or a wrapped storage error.
type OpError struct {
	Op        Op
	ProductID int64
	Err       error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("cart %s product %d: %v", e.Op, e.ProductID, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

type catalog interface {
	Product(ctx context.Context, id int64) (domain.Attributes, error)
	Stock(ctx context.Context, id int64) (*domain.Stock, error)
}

type storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Service holds the cart for one session. Every successful mutation is written
// to storage before the in-memory cart changes.
type Service struct {
	mu      sync.Mutex
	cart    domain.Cart
	store   storage
	catalog catalog
	logger  *zap.Logger
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New loads the persisted cart from store. A missing or unparsable value
// yields an empty cart; a storage failure is returned.
func New(ctx context.Context, store storage, catalog catalog, opts ...Option) (*Service, error) {
	s := &Service{
		store:   store,
		catalog: catalog,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.cart = cart
	return s, nil
}

func (s *Service) load(ctx context.Context) (domain.Cart, error) {
	raw, err := s.store.Get(ctx, StorageKey)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		s.logger.Warn("discarding unparsable stored cart", zap.String("key", StorageKey), zap.Error(err))
		return domain.Cart{}, nil
	}
	if cart == nil {
		return domain.Cart{}, nil
	}
	return dedupe(cart), nil
}

// dedupe keeps the first entry per product and drops non-positive amounts so a
// hand-edited value cannot break the cart invariants.
func dedupe(cart domain.Cart) domain.Cart {
	seen := make(map[int64]struct{}, len(cart))
	out := make(domain.Cart, 0, len(cart))
	for _, item := range cart {
		if _, ok := seen[item.ID]; ok || item.Amount < 1 {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Cart returns a copy of the current cart.
func (s *Service) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddProduct adds one unit of the product. A product already in the cart is
// incremented through UpdateProductAmount and fails the way that call does.
func (s *Service) AddProduct(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cart.Find(productID); i >= 0 {
		return s.updateAmount(ctx, productID, s.cart[i].Amount+1)
	}

	attrs, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return s.fail(OpAdd, productID, upstream(err))
	}

	next := append(s.cart.Clone(), domain.NewLineItem(productID, 1, attrs))
	if err := s.commit(ctx, next); err != nil {
		return s.fail(OpAdd, productID, err)
	}
	s.logger.Info("product added", zap.Int64("product_id", productID))
	return nil
}

// RemoveProduct drops the product's line item.
func (s *Service) RemoveProduct(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Find(productID) < 0 {
		return s.fail(OpRemove, productID, domain.ErrNotFound)
	}

	next := make(domain.Cart, 0, len(s.cart)-1)
	for _, item := range s.cart {
		if item.ID != productID {
			next = append(next, item)
		}
	}
	if err := s.commit(ctx, next); err != nil {
		return s.fail(OpRemove, productID, err)
	}
	s.logger.Info("product removed", zap.Int64("product_id", productID))
	return nil
}

// UpdateAmountInput is the requested new quantity for a product.
type UpdateAmountInput struct {
	ProductID int64 `json:"productId"`
	Amount    int   `json:"amount"`
}

// UpdateProductAmount sets the product's quantity after checking current stock.
func (s *Service) UpdateProductAmount(ctx context.Context, in UpdateAmountInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateAmount(ctx, in.ProductID, in.Amount)
}

func (s *Service) updateAmount(ctx context.Context, productID int64, amount int) error {
	if amount < 1 {
		return s.fail(OpUpdateAmount, productID, domain.ErrInvalidQuantity)
	}

	stock, err := s.catalog.Stock(ctx, productID)
	if err != nil {
		return s.fail(OpUpdateAmount, productID, upstream(err))
	}
	if stock == nil {
		return s.fail(OpUpdateAmount, productID, fmt.Errorf("%w: empty stock record", domain.ErrUpstream))
	}
	if stock.Amount < amount {
		s.logger.Info("requested amount out of stock",
			zap.Int64("product_id", productID),
			zap.Int("requested", amount),
			zap.Int("available", stock.Amount),
		)
		return &OpError{Op: OpUpdateAmount, ProductID: productID, Err: domain.ErrInsufficientStock}
	}

	next := make(domain.Cart, len(s.cart))
	for i, item := range s.cart {
		if item.ID == productID {
			item = item.WithAmount(amount)
		}
		next[i] = item
	}
	if err := s.commit(ctx, next); err != nil {
		return s.fail(OpUpdateAmount, productID, err)
	}
	s.logger.Info("product amount updated", zap.Int64("product_id", productID), zap.Int("amount", amount))
	return nil
}

// commit persists next and only then replaces the in-memory cart.
func (s *Service) commit(ctx context.Context, next domain.Cart) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.cart = next
	return nil
}

func (s *Service) fail(op Op, productID int64, err error) error {
	s.logger.Warn("cart operation failed", zap.String("op", string(op)), zap.Int64("product_id", productID), zap.Error(err))
	return &OpError{Op: op, ProductID: productID, Err: err}
}

func upstream(err error) error {
	if errors.Is(err, domain.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}
