package assistantService

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	assistantRepository "github.com/alexleon2021/vocalcart/internal/api/assistant/repository"
	cartService "github.com/alexleon2021/vocalcart/internal/api/cart/service"
	catalogRepository "github.com/alexleon2021/vocalcart/internal/api/catalog/repository"
	catalogService "github.com/alexleon2021/vocalcart/internal/api/catalog/service"
	"github.com/alexleon2021/vocalcart/internal/api/checkout"
	checkoutRepository "github.com/alexleon2021/vocalcart/internal/api/checkout/repository"
	checkoutService "github.com/alexleon2021/vocalcart/internal/api/checkout/service"
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/alexleon2021/vocalcart/pkg/redis"
	"github.com/alexleon2021/vocalcart/pkg/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeRedis struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: make(map[string][]byte)}
}

func (r *fakeRedis) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[key] = payload
	return nil
}

func (r *fakeRedis) GetJSON(_ context.Context, key string, dest interface{}) error {
	r.mu.Lock()
	payload, ok := r.store[key]
	r.mu.Unlock()
	if !ok {
		return redis.ErrNotFound
	}
	return jsoniter.Unmarshal(payload, dest)
}

func (r *fakeRedis) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, key)
	return nil
}

func (r *fakeRedis) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

type memCatalogRepo struct {
	mu         sync.Mutex
	products   []*entity.ProductWithCategory
	categories []entity.Category
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{
		products: []*entity.ProductWithCategory{
			testProduct("prod-1", "Manzanas", 2500, 10, "Frutas", "frutas"),
			testProduct("prod-2", "Leche Entera", 4200, 5, "Lacteos", "lacteos"),
			testProduct("prod-3", "Pan Integral", 3800, 8, "Panaderia", "panaderia"),
		},
		categories: []entity.Category{
			{ID: "cat-1", Name: "Frutas", Slug: "frutas", IsActive: true},
			{ID: "cat-2", Name: "Lacteos", Slug: "lacteos", IsActive: true},
			{ID: "cat-3", Name: "Panaderia", Slug: "panaderia", IsActive: true},
		},
	}
}

func testProduct(id, name string, price int64, stock int, category, slug string) *entity.ProductWithCategory {
	return &entity.ProductWithCategory{
		Product: entity.Product{
			ID:       id,
			Name:     name,
			Price:    price,
			Stock:    stock,
			IsActive: true,
		},
		CategoryName: category,
		CategorySlug: slug,
	}
}

func (r *memCatalogRepo) NewClient(_ bool) (catalogRepository.Client, error) {
	return catalogRepository.Client{
		Products:   &memProducts{repo: r},
		Categories: &memCategories{repo: r},
		Commit:     func() error { return nil },
		Rollback:   func() error { return nil },
	}, nil
}

type memProducts struct {
	repo *memCatalogRepo
}

func (p *memProducts) GetProducts(_ context.Context, search, categorySlug string, limit, offset int) ([]entity.ProductWithCategory, int, error) {
	p.repo.mu.Lock()
	defer p.repo.mu.Unlock()

	matched := make([]entity.ProductWithCategory, 0, len(p.repo.products))
	for _, prod := range p.repo.products {
		if search != "" && !strings.Contains(strings.ToLower(prod.Name), strings.ToLower(search)) {
			continue
		}
		if categorySlug != "" && prod.CategorySlug != categorySlug {
			continue
		}
		matched = append(matched, *prod)
	}

	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (p *memProducts) GetProductByID(_ context.Context, id string) (entity.ProductWithCategory, error) {
	p.repo.mu.Lock()
	defer p.repo.mu.Unlock()

	for _, prod := range p.repo.products {
		if prod.ID == id {
			return *prod, nil
		}
	}
	return entity.ProductWithCategory{}, errors.New("product not found")
}

func (p *memProducts) GetProductsByIDs(_ context.Context, ids []string) ([]entity.Product, error) {
	p.repo.mu.Lock()
	defer p.repo.mu.Unlock()

	var out []entity.Product
	for _, prod := range p.repo.products {
		for _, id := range ids {
			if prod.ID == id {
				out = append(out, prod.Product)
			}
		}
	}
	return out, nil
}

func (p *memProducts) DecrementStock(_ context.Context, productID string, quantity int) error {
	p.repo.mu.Lock()
	defer p.repo.mu.Unlock()

	for _, prod := range p.repo.products {
		if prod.ID == productID {
			if prod.Stock < quantity {
				return errors.New("insufficient stock")
			}
			prod.Stock -= quantity
			return nil
		}
	}
	return errors.New("product not found")
}

type memCategories struct {
	repo *memCatalogRepo
}

func (c *memCategories) GetAllCategories(_ context.Context) ([]entity.Category, error) {
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()
	return append([]entity.Category(nil), c.repo.categories...), nil
}

func (c *memCategories) GetCategoryBySlug(_ context.Context, slug string) (entity.Category, error) {
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()
	for _, cat := range c.repo.categories {
		if cat.Slug == slug {
			return cat, nil
		}
	}
	return entity.Category{}, errors.New("category not found")
}

type memCheckoutRepo struct {
	mu        sync.Mutex
	catalog   *memCatalogRepo
	orders    map[string]entity.Order
	items     map[string][]entity.OrderItem
	shipments map[string]entity.Shipment
}

func newMemCheckoutRepo(catalog *memCatalogRepo) *memCheckoutRepo {
	return &memCheckoutRepo{
		catalog:   catalog,
		orders:    make(map[string]entity.Order),
		items:     make(map[string][]entity.OrderItem),
		shipments: make(map[string]entity.Shipment),
	}
}

func (r *memCheckoutRepo) NewClient(_ bool) (checkoutRepository.Client, error) {
	return checkoutRepository.Client{
		Orders:   &memOrders{repo: r},
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type memOrders struct {
	repo *memCheckoutRepo
}

func (o *memOrders) CreateOrder(_ context.Context, order entity.Order) error {
	o.repo.mu.Lock()
	defer o.repo.mu.Unlock()
	o.repo.orders[order.ID] = order
	return nil
}

func (o *memOrders) CreateOrderItem(_ context.Context, item entity.OrderItem) error {
	o.repo.mu.Lock()
	defer o.repo.mu.Unlock()
	o.repo.items[item.OrderID] = append(o.repo.items[item.OrderID], item)
	return nil
}

func (o *memOrders) CreateShipment(_ context.Context, shipment entity.Shipment) error {
	o.repo.mu.Lock()
	defer o.repo.mu.Unlock()
	o.repo.shipments[shipment.OrderID] = shipment
	return nil
}

func (o *memOrders) DecrementStock(ctx context.Context, productID string, quantity int) error {
	return (&memProducts{repo: o.repo.catalog}).DecrementStock(ctx, productID, quantity)
}

func (o *memOrders) GetOrderByID(_ context.Context, id string) (entity.Order, error) {
	o.repo.mu.Lock()
	defer o.repo.mu.Unlock()
	order, ok := o.repo.orders[id]
	if !ok {
		return entity.Order{}, checkout.ErrOrderNotFound
	}
	return order, nil
}

func (o *memOrders) GetOrderItems(_ context.Context, orderID string) ([]entity.OrderItem, error) {
	o.repo.mu.Lock()
	defer o.repo.mu.Unlock()
	return o.repo.items[orderID], nil
}

type memAssistantRepo struct {
	mu       sync.Mutex
	commands []entity.AssistantCommand
}

func (r *memAssistantRepo) NewClient(_ bool) (assistantRepository.Client, error) {
	return assistantRepository.Client{
		Commands: &memCommands{repo: r},
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type memCommands struct {
	repo *memAssistantRepo
}

func (c *memCommands) CreateCommand(_ context.Context, command entity.AssistantCommand) error {
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()
	c.repo.commands = append(c.repo.commands, command)
	return nil
}

func (c *memCommands) GetCommandsBySession(_ context.Context, sessionID string, limit, offset int) ([]entity.AssistantCommand, int, error) {
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	var matched []entity.AssistantCommand
	for _, cmd := range c.repo.commands {
		if cmd.SessionID == sessionID {
			matched = append(matched, cmd)
		}
	}

	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type testEnv struct {
	service     *assistantService
	catalogRepo *memCatalogRepo
	orderRepo   *memCheckoutRepo
	history     *memAssistantRepo
	redis       *fakeRedis
}

func newTestEnv() *testEnv {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	rds := newFakeRedis()
	catalogRepo := newMemCatalogRepo()
	orderRepo := newMemCheckoutRepo(catalogRepo)
	history := &memAssistantRepo{}
	u := utils.New()

	catalogSvc := catalogService.NewCatalogService(logger, catalogRepo)
	cartSvc := cartService.NewCartService(logger, rds, catalogRepo)
	checkoutSvc := checkoutService.NewCheckoutService(logger, orderRepo, catalogRepo, cartSvc, u)

	return &testEnv{
		service: &assistantService{
			log:             logger,
			redisServer:     rds,
			assistantRepo:   history,
			cartService:     cartSvc,
			checkoutService: checkoutSvc,
			catalogService:  catalogSvc,
			utils:           u,
		},
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		history:     history,
		redis:       rds,
	}
}

func (e *testEnv) newSession(mode entity.DictationMode) string {
	session := entity.AssistantSession{
		ID:            "sess-test",
		Screen:        entity.ScreenShop,
		DictationMode: mode,
		Voice:         "default",
		CreatedAt:     time.Now(),
		LastActivity:  time.Now(),
	}
	if err := e.service.saveSession(context.Background(), &session); err != nil {
		panic(err)
	}
	return session.ID
}

func (e *testEnv) session(sessionID string) entity.AssistantSession {
	session, err := e.service.GetSession(context.Background(), sessionID)
	if err != nil {
		panic(err)
	}
	return session
}
