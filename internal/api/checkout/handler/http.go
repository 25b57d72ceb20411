package checkoutHandler

import (
	checkoutService "github.com/alexleon2021/vocalcart/internal/api/checkout/service"
	"github.com/alexleon2021/vocalcart/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CheckoutHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	checkoutService checkoutService.ICheckoutService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs checkoutService.ICheckoutService,
) *CheckoutHandler {
	return &CheckoutHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		checkoutService: cs,
	}
}

func (h *CheckoutHandler) Start(srv fiber.Router) {
	checkout := srv.Group("/checkout")

	checkout.Post("", h.middleware.NewTokenMiddleware, h.ProcessCheckout)
	checkout.Get("/orders/:id", h.middleware.NewTokenMiddleware, h.GetOrder)
}
