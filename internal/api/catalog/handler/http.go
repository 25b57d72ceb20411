package catalogHandler

import (
	catalogService "github.com/alexleon2021/vocalcart/internal/api/catalog/service"
	"github.com/alexleon2021/vocalcart/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	catalogService catalogService.ICatalogService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs catalogService.ICatalogService,
) *CatalogHandler {
	return &CatalogHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		catalogService: cs,
	}
}

func (h *CatalogHandler) Start(srv fiber.Router) {
	catalog := srv.Group("/catalog")

	// Public endpoints, the storefront loads these before a session exists
	catalog.Get("/products", h.GetProducts)
	catalog.Get("/products/:id", h.GetProductByID)
	catalog.Get("/categories", h.GetAllCategories)
}
