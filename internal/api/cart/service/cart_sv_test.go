package cartService

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/cart"
	catalogRepository "github.com/alexleon2021/vocalcart/internal/api/catalog/repository"
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/alexleon2021/vocalcart/pkg/redis"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type fakeRedis struct {
	store map[string][]byte
}

func (r *fakeRedis) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}
	r.store[key] = payload
	return nil
}

func (r *fakeRedis) GetJSON(_ context.Context, key string, dest interface{}) error {
	payload, ok := r.store[key]
	if !ok {
		return redis.ErrNotFound
	}
	return jsoniter.Unmarshal(payload, dest)
}

func (r *fakeRedis) Delete(_ context.Context, key string) error {
	delete(r.store, key)
	return nil
}

func (r *fakeRedis) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

type stubCatalogRepo struct {
	products map[string]entity.ProductWithCategory
}

func (r *stubCatalogRepo) NewClient(_ bool) (catalogRepository.Client, error) {
	return catalogRepository.Client{
		Products: &stubProducts{products: r.products},
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubProducts struct {
	products map[string]entity.ProductWithCategory
}

func (p *stubProducts) GetProducts(_ context.Context, _, _ string, _, _ int) ([]entity.ProductWithCategory, int, error) {
	return nil, 0, nil
}

func (p *stubProducts) GetProductByID(_ context.Context, id string) (entity.ProductWithCategory, error) {
	product, ok := p.products[id]
	if !ok {
		return entity.ProductWithCategory{}, errors.New("product not found")
	}
	return product, nil
}

func (p *stubProducts) GetProductsByIDs(_ context.Context, _ []string) ([]entity.Product, error) {
	return nil, nil
}

func (p *stubProducts) DecrementStock(_ context.Context, _ string, _ int) error {
	return nil
}

func newTestCartService() ICartService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := &stubCatalogRepo{
		products: map[string]entity.ProductWithCategory{
			"prod-1": {Product: entity.Product{ID: "prod-1", Name: "Manzanas", Price: 2500, Stock: 10}},
			"prod-2": {Product: entity.Product{ID: "prod-2", Name: "Leche Entera", Price: 4200, Stock: 3}},
		},
	}

	return NewCartService(logger, &fakeRedis{store: make(map[string][]byte)}, repo)
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: "prod-1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, int64(12500), resp.Subtotal)
	assert.Equal(t, int64(2375), resp.Tax)
	assert.Equal(t, int64(14875), resp.Total)
}

func TestAddItemRefusedInFull(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: "prod-2", Quantity: 2})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: "prod-2", Quantity: 2})
	require.Error(t, err)

	var stockErr *cart.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Leche Entera", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	// The cart keeps what it had, nothing partial was added.
	resp, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalUnits)
}

func TestSetQuantityZeroRemovesItem(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.SetQuantity(ctx, "s1", "prod-1", 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestSetQuantityUnknownItem(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.SetQuantity(context.Background(), "s1", "prod-1", 2)
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestEmptyCartIsNotAnError(t *testing.T) {
	svc := newTestCartService()

	resp, err := svc.GetCart(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.Total)
}

func TestClearCart(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", cart.AddItemRequest{ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "s1"))

	resp, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
