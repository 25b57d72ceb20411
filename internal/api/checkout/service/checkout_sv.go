package checkoutService

import (
	"context"
	"strings"
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/checkout"
	"github.com/alexleon2021/vocalcart/internal/entity"
	contextPkg "github.com/alexleon2021/vocalcart/pkg/context"
	"github.com/alexleon2021/vocalcart/pkg/log"
)

func (s *checkoutService) ProcessCheckout(ctx context.Context, sessionID string, req checkout.CheckoutRequest) (*checkout.CheckoutResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	cartEntity, err := s.cartService.GetCartEntity(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cartEntity.Items) == 0 {
		return nil, checkout.ErrEmptyCart
	}

	now := time.Now()

	orderID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return nil, err
	}

	cardDigits := onlyDigits(req.CardNumber)

	order := entity.Order{
		ID:             orderID,
		SessionID:      sessionID,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		DocumentNumber: onlyDigits(req.DocumentNumber),
		Phone:          onlyDigits(req.Phone),
		Email:          strings.TrimSpace(strings.ToLower(req.Email)),
		CardLastFour:   cardDigits[len(cardDigits)-4:],
		DeliveryMethod: entity.DeliveryMethodShipping,
		Subtotal:       cartEntity.Subtotal(),
		Tax:            cartEntity.Tax(),
		Total:          cartEntity.Total(),
		Status:         entity.OrderStatusConfirmed,
		CreatedAt:      now,
	}

	shipment := entity.Shipment{
		OrderID:    orderID,
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Notes:      strings.TrimSpace(req.Notes),
	}

	if !req.RequiresShipping {
		order.DeliveryMethod = entity.DeliveryMethodPickup
		shipment.Address = ""
		shipment.City = ""
		shipment.PostalCode = ""
		// The assistant draws the store when checkout opens and carries it
		// here; a direct API caller gets one assigned now.
		shipment.PickupSite = strings.TrimSpace(req.PickupSite)
		if shipment.PickupSite == "" {
			shipment.PickupSite = checkout.RandomPickupSite()
		}
	}

	repo, err := s.checkoutRepo.NewClient(true)
	if err != nil {
		return nil, err
	}
	defer repo.Rollback()

	if err := repo.Orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	for _, it := range cartEntity.Items {
		itemID, err := s.utils.NewULIDFromTimestamp(now)
		if err != nil {
			return nil, err
		}

		if err := repo.Orders.CreateOrderItem(ctx, entity.OrderItem{
			ID:          itemID,
			OrderID:     orderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal(),
		}); err != nil {
			return nil, err
		}

		if err := repo.Orders.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			return nil, err
		}
	}

	shipmentID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return nil, err
	}
	shipment.ID = shipmentID

	if err := repo.Orders.CreateShipment(ctx, shipment); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit checkout transaction")
		return nil, err
	}

	if err := s.cartService.ClearCart(ctx, sessionID); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Order created but cart could not be cleared")
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"order_id":   orderID,
		"total":      order.Total,
		"delivery":   order.DeliveryMethod,
	}).Info("Checkout completed")

	return &checkout.CheckoutResponse{
		OrderID:        orderID,
		Status:         string(order.Status),
		DeliveryMethod: string(order.DeliveryMethod),
		PickupSite:     shipment.PickupSite,
		Subtotal:       order.Subtotal,
		Tax:            order.Tax,
		Total:          order.Total,
		CreatedAt:      now,
	}, nil
}

func (s *checkoutService) GetOrder(ctx context.Context, orderID string) (*checkout.OrderDetailResponse, error) {
	repo, err := s.checkoutRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	order, err := repo.Orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := repo.Orders.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := &checkout.OrderDetailResponse{
		OrderID:        order.ID,
		CustomerName:   order.CustomerName,
		DeliveryMethod: string(order.DeliveryMethod),
		Status:         string(order.Status),
		Items:          make([]checkout.OrderItemResponse, 0, len(items)),
		Subtotal:       order.Subtotal,
		Tax:            order.Tax,
		Total:          order.Total,
		CreatedAt:      order.CreatedAt,
	}

	for _, it := range items {
		resp.Items = append(resp.Items, checkout.OrderItemResponse{
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})
	}

	return resp, nil
}

func (s *checkoutService) validateRequest(req checkout.CheckoutRequest) error {
	if err := checkout.ValidateName(req.CustomerName); err != nil {
		return err
	}
	if err := checkout.ValidateDocument(req.DocumentNumber); err != nil {
		return err
	}
	if err := checkout.ValidatePhone(req.Phone); err != nil {
		return err
	}
	if err := checkout.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := checkout.ValidateCardNumber(req.CardNumber); err != nil {
		return err
	}
	if err := checkout.ValidateCardExpiry(req.CardExpiry); err != nil {
		return err
	}
	if err := checkout.ValidateCardCVV(req.CardCVV); err != nil {
		return err
	}
	if req.RequiresShipping {
		if strings.TrimSpace(req.Address) == "" {
			return checkout.ErrMissingAddress
		}
		if strings.TrimSpace(req.City) == "" {
			return checkout.ErrMissingCity
		}
	}

	return nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
