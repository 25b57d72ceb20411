package cartService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/cart"
	"github.com/alexleon2021/vocalcart/internal/entity"
	contextPkg "github.com/alexleon2021/vocalcart/pkg/context"
	"github.com/alexleon2021/vocalcart/pkg/log"
	"github.com/alexleon2021/vocalcart/pkg/redis"
)

const cartTTL = 24 * time.Hour

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*cart.CartResponse, error) {
	c, err := s.GetCartEntity(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.makeResponse(c), nil
}

func (s *cartService) GetCartEntity(ctx context.Context, sessionID string) (entity.Cart, error) {
	var c entity.Cart

	err := s.redisServer.GetJSON(ctx, cartKey(sessionID), &c)
	if errors.Is(err, redis.ErrNotFound) {
		return entity.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return entity.Cart{}, err
	}

	return c, nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, req cart.AddItemRequest) (*cart.CartResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	product, err := repo.Products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.GetCartEntity(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	inCart := 0
	for _, it := range c.Items {
		if it.ProductID == req.ProductID {
			inCart = it.Quantity
			break
		}
	}

	// Refuse in full when the combined quantity exceeds stock; partial
	// additions would silently change what the user asked for.
	if inCart+req.Quantity > product.Stock {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"product_id": req.ProductID,
			"requested":  req.Quantity,
			"available":  product.Stock - inCart,
		}).Warn("Add to cart refused, insufficient stock")
		return nil, &cart.InsufficientStockError{
			ProductName: product.Name,
			Requested:   req.Quantity,
			Available:   product.Stock - inCart,
		}
	}

	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == req.ProductID {
			c.Items[i].Quantity += req.Quantity
			found = true
			break
		}
	}

	if !found {
		c.Items = append(c.Items, entity.CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    req.Quantity,
		})
	}

	if err := s.save(ctx, &c); err != nil {
		return nil, err
	}

	return s.makeResponse(c), nil
}

func (s *cartService) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*cart.CartResponse, error) {
	if quantity == 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	repo, err := s.catalogRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	product, err := repo.Products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if quantity > product.Stock {
		return nil, &cart.InsufficientStockError{
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}

	c, err := s.GetCartEntity(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, cart.ErrItemNotFound
	}

	if err := s.save(ctx, &c); err != nil {
		return nil, err
	}

	return s.makeResponse(c), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) (*cart.CartResponse, error) {
	c, err := s.GetCartEntity(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := c.Items[:0]
	found := false
	for _, it := range c.Items {
		if it.ProductID == productID {
			found = true
			continue
		}
		items = append(items, it)
	}
	if !found {
		return nil, cart.ErrItemNotFound
	}
	c.Items = items

	if err := s.save(ctx, &c); err != nil {
		return nil, err
	}

	return s.makeResponse(c), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.redisServer.Delete(ctx, cartKey(sessionID))
}

func (s *cartService) save(ctx context.Context, c *entity.Cart) error {
	c.UpdatedAt = time.Now()
	return s.redisServer.SetJSON(ctx, cartKey(c.SessionID), c, cartTTL)
}

func (s *cartService) makeResponse(c entity.Cart) *cart.CartResponse {
	resp := &cart.CartResponse{
		SessionID:  c.SessionID,
		Items:      make([]cart.ItemResponse, 0, len(c.Items)),
		TotalUnits: c.TotalUnits(),
		Subtotal:   c.Subtotal(),
		Tax:        c.Tax(),
		Total:      c.Total(),
	}

	for _, it := range c.Items {
		resp.Items = append(resp.Items, cart.ItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal(),
		})
	}

	return resp
}
