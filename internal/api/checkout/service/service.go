package checkoutService

import (
	"context"

	cartService "github.com/alexleon2021/vocalcart/internal/api/cart/service"
	catalogRepository "github.com/alexleon2021/vocalcart/internal/api/catalog/repository"
	"github.com/alexleon2021/vocalcart/internal/api/checkout"
	checkoutRepository "github.com/alexleon2021/vocalcart/internal/api/checkout/repository"
	"github.com/alexleon2021/vocalcart/pkg/utils"
	"github.com/sirupsen/logrus"
)

type ICheckoutService interface {
	ProcessCheckout(ctx context.Context, sessionID string, req checkout.CheckoutRequest) (*checkout.CheckoutResponse, error)
	GetOrder(ctx context.Context, orderID string) (*checkout.OrderDetailResponse, error)
}

type checkoutService struct {
	log          *logrus.Logger
	checkoutRepo checkoutRepository.Repository
	catalogRepo  catalogRepository.Repository
	cartService  cartService.ICartService
	utils        utils.IUtils
}

func NewCheckoutService(
	log *logrus.Logger,
	checkoutRepo checkoutRepository.Repository,
	catalogRepo catalogRepository.Repository,
	cs cartService.ICartService,
	utils utils.IUtils,
) ICheckoutService {
	return &checkoutService{
		log:          log,
		checkoutRepo: checkoutRepo,
		catalogRepo:  catalogRepo,
		cartService:  cs,
		utils:        utils,
	}
}
