package catalogService

import (
	"context"

	"github.com/alexleon2021/vocalcart/internal/api/catalog"
	"github.com/alexleon2021/vocalcart/internal/entity"
	contextPkg "github.com/alexleon2021/vocalcart/pkg/context"
	"github.com/alexleon2021/vocalcart/pkg/log"
	"github.com/alexleon2021/vocalcart/pkg/nlp"
)

func (s *catalogService) GetProducts(ctx context.Context, search, categorySlug string, page, limit int) (*catalog.ProductListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create catalog repository client")
		return nil, err
	}

	offset := (page - 1) * limit

	products, total, err := repo.Products.GetProducts(ctx, search, categorySlug, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &catalog.ProductListResponse{
		Products: make([]catalog.ProductResponse, 0, len(products)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}

	for _, p := range products {
		resp.Products = append(resp.Products, catalog.ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.Price,
			Stock:        p.Stock,
			Unit:         p.Unit,
			ImageURL:     p.ImageURL,
			Category:     p.CategoryName,
			CategorySlug: p.CategorySlug,
		})
	}

	return resp, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id string) (entity.ProductWithCategory, error) {
	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return entity.ProductWithCategory{}, err
	}

	return repo.Products.GetProductByID(ctx, id)
}

func (s *catalogService) GetAllCategories(ctx context.Context) (*catalog.CategoryListResponse, error) {
	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	categories, err := repo.Categories.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	resp := &catalog.CategoryListResponse{
		Categories: make([]catalog.CategoryResponse, 0, len(categories)),
	}

	for _, c := range categories {
		resp.Categories = append(resp.Categories, catalog.CategoryResponse{
			ID:        c.ID,
			Name:      c.Name,
			Slug:      c.Slug,
			CreatedAt: c.CreatedAt,
		})
	}

	return resp, nil
}

// FindProductByName resolves a spoken product reference against the active
// catalog, tolerating recognition slips through fuzzy matching.
func (s *catalogService) FindProductByName(ctx context.Context, spokenName string) (entity.ProductWithCategory, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return entity.ProductWithCategory{}, err
	}

	products, _, err := repo.Products.GetProducts(ctx, "", "", 500, 0)
	if err != nil {
		return entity.ProductWithCategory{}, err
	}

	names := make([]string, 0, len(products))
	byName := make(map[string]entity.ProductWithCategory, len(products))
	for _, p := range products {
		names = append(names, p.Name)
		byName[p.Name] = p
	}

	matcher := nlp.NewMatcher()
	match, ok := matcher.BestMatch(spokenName, names)
	if !ok {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"spoken":     spokenName,
		}).Debug("No product matched spoken name")
		return entity.ProductWithCategory{}, catalog.ErrProductNotFound
	}

	return byName[match.Name], nil
}
