package cartService

import (
	"context"

	"github.com/alexleon2021/vocalcart/internal/api/cart"
	catalogRepository "github.com/alexleon2021/vocalcart/internal/api/catalog/repository"
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/alexleon2021/vocalcart/pkg/redis"
	"github.com/sirupsen/logrus"
)

type ICartService interface {
	GetCart(ctx context.Context, sessionID string) (*cart.CartResponse, error)
	AddItem(ctx context.Context, sessionID string, req cart.AddItemRequest) (*cart.CartResponse, error)
	SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*cart.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*cart.CartResponse, error)
	ClearCart(ctx context.Context, sessionID string) error
	GetCartEntity(ctx context.Context, sessionID string) (entity.Cart, error)
}

type cartService struct {
	log         *logrus.Logger
	redisServer redis.IRedis
	catalogRepo catalogRepository.Repository
}

func NewCartService(
	log *logrus.Logger,
	redisServer redis.IRedis,
	catalogRepo catalogRepository.Repository,
) ICartService {
	return &cartService{
		log:         log,
		redisServer: redisServer,
		catalogRepo: catalogRepo,
	}
}
