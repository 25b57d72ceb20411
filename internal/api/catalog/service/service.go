package catalogService

import (
	"context"

	"github.com/alexleon2021/vocalcart/internal/api/catalog"
	catalogRepository "github.com/alexleon2021/vocalcart/internal/api/catalog/repository"
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/sirupsen/logrus"
)

type ICatalogService interface {
	GetProducts(ctx context.Context, search, categorySlug string, page, limit int) (*catalog.ProductListResponse, error)
	GetProductByID(ctx context.Context, id string) (entity.ProductWithCategory, error)
	GetAllCategories(ctx context.Context) (*catalog.CategoryListResponse, error)
	FindProductByName(ctx context.Context, spokenName string) (entity.ProductWithCategory, error)
}

type catalogService struct {
	log         *logrus.Logger
	catalogRepo catalogRepository.Repository
}

func NewCatalogService(
	log *logrus.Logger,
	catalogRepo catalogRepository.Repository,
) ICatalogService {
	return &catalogService{
		log:         log,
		catalogRepo: catalogRepo,
	}
}
