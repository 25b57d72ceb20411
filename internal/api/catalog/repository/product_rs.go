package catalogRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/catalog"
	"github.com/alexleon2021/vocalcart/internal/entity"
	contextPkg "github.com/alexleon2021/vocalcart/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ProductDB struct {
	ID           sql.NullString `db:"id"`
	CategoryID   sql.NullString `db:"category_id"`
	Name         sql.NullString `db:"name"`
	Description  sql.NullString `db:"description"`
	Price        sql.NullInt64  `db:"price"`
	Stock        sql.NullInt64  `db:"stock"`
	Unit         sql.NullString `db:"unit"`
	ImageURL     sql.NullString `db:"image_url"`
	IsActive     sql.NullBool   `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	CategoryName sql.NullString `db:"category_name"`
	CategorySlug sql.NullString `db:"category_slug"`
}

func (r *productsRepository) GetProducts(ctx context.Context, search, categorySlug string, limit, offset int) ([]entity.ProductWithCategory, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var productsList []ProductDB
	var total int

	argsKV := map[string]interface{}{
		"search":        search,
		"category_slug": categorySlug,
		"limit":         limit,
		"offset":        offset,
	}

	countQuery, countArgs, err := sqlx.Named(queryCountProducts, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountProducts named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountProducts execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetProducts, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProducts named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &productsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProducts execution err")
		return nil, 0, err
	}

	products := make([]entity.ProductWithCategory, 0, len(productsList))
	for _, p := range productsList {
		products = append(products, r.makeProductWithCategory(p))
	}

	return products, total, nil
}

func (r *productsRepository) GetProductByID(ctx context.Context, id string) (entity.ProductWithCategory, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var product ProductDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetProductByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductByID named query preparation err")
		return entity.ProductWithCategory{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetProductByID no rows found")
			return entity.ProductWithCategory{}, catalog.ErrProductNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductByID execution err")
		return entity.ProductWithCategory{}, err
	}

	return r.makeProductWithCategory(product), nil
}

func (r *productsRepository) GetProductsByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(queryGetProductsByIDs, ids)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductsByIDs query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var productsList []ProductDB
	if err := r.q.SelectContext(ctx, &productsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductsByIDs execution err")
		return nil, err
	}

	products := make([]entity.Product, 0, len(productsList))
	for _, p := range productsList {
		products = append(products, r.makeProduct(p))
	}

	return products, nil
}

func (r *productsRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":       productID,
		"quantity": quantity,
	}

	query, args, err := sqlx.Named(queryDecrementStock, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DecrementStock named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DecrementStock execution err")
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"product_id": productID,
		}).Warn("DecrementStock insufficient stock")
		return catalog.ErrInsufficientStock
	}

	return nil
}

func (r *productsRepository) makeProduct(p ProductDB) entity.Product {
	return entity.Product{
		ID:          p.ID.String,
		CategoryID:  p.CategoryID.String,
		Name:        p.Name.String,
		Description: p.Description.String,
		Price:       p.Price.Int64,
		Stock:       int(p.Stock.Int64),
		Unit:        p.Unit.String,
		ImageURL:    p.ImageURL.String,
		IsActive:    p.IsActive.Bool,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *productsRepository) makeProductWithCategory(p ProductDB) entity.ProductWithCategory {
	return entity.ProductWithCategory{
		Product:      r.makeProduct(p),
		CategoryName: p.CategoryName.String,
		CategorySlug: p.CategorySlug.String,
	}
}
