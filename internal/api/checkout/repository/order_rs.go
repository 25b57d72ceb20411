package checkoutRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/catalog"
	"github.com/alexleon2021/vocalcart/internal/api/checkout"
	"github.com/alexleon2021/vocalcart/internal/entity"
	contextPkg "github.com/alexleon2021/vocalcart/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type OrderDB struct {
	ID             sql.NullString `db:"id"`
	SessionID      sql.NullString `db:"session_id"`
	CustomerName   sql.NullString `db:"customer_name"`
	DocumentNumber sql.NullString `db:"document_number"`
	Phone          sql.NullString `db:"phone"`
	Email          sql.NullString `db:"email"`
	CardLastFour   sql.NullString `db:"card_last_four"`
	DeliveryMethod sql.NullString `db:"delivery_method"`
	Subtotal       sql.NullInt64  `db:"subtotal"`
	Tax            sql.NullInt64  `db:"tax"`
	Total          sql.NullInt64  `db:"total"`
	Status         sql.NullString `db:"status"`
	CreatedAt      time.Time      `db:"created_at"`
}

type OrderItemDB struct {
	ID          sql.NullString `db:"id"`
	OrderID     sql.NullString `db:"order_id"`
	ProductID   sql.NullString `db:"product_id"`
	ProductName sql.NullString `db:"product_name"`
	UnitPrice   sql.NullInt64  `db:"unit_price"`
	Quantity    sql.NullInt64  `db:"quantity"`
	Subtotal    sql.NullInt64  `db:"subtotal"`
}

func (r *ordersRepository) CreateOrder(ctx context.Context, order entity.Order) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":              order.ID,
		"session_id":      order.SessionID,
		"customer_name":   order.CustomerName,
		"document_number": order.DocumentNumber,
		"phone":           order.Phone,
		"email":           order.Email,
		"card_last_four":  order.CardLastFour,
		"delivery_method": string(order.DeliveryMethod),
		"subtotal":        order.Subtotal,
		"tax":             order.Tax,
		"total":           order.Total,
		"status":          string(order.Status),
		"created_at":      order.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateOrder, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateOrder")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating order")
		return err
	}

	return nil
}

func (r *ordersRepository) CreateOrderItem(ctx context.Context, item entity.OrderItem) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":           item.ID,
		"order_id":     item.OrderID,
		"product_id":   item.ProductID,
		"product_name": item.ProductName,
		"unit_price":   item.UnitPrice,
		"quantity":     item.Quantity,
		"subtotal":     item.Subtotal,
	}

	query, args, err := sqlx.Named(queryCreateOrderItem, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateOrderItem")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating order item")
		return err
	}

	return nil
}

func (r *ordersRepository) CreateShipment(ctx context.Context, shipment entity.Shipment) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          shipment.ID,
		"order_id":    shipment.OrderID,
		"address":     shipment.Address,
		"city":        shipment.City,
		"postal_code": shipment.PostalCode,
		"notes":       shipment.Notes,
		"pickup_site": shipment.PickupSite,
	}

	query, args, err := sqlx.Named(queryCreateShipment, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateShipment")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating shipment")
		return err
	}

	return nil
}

// DecrementStock guards with the current stock level so an oversell inside
// the checkout transaction rolls the whole order back.
func (r *ordersRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
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

func (r *ordersRepository) GetOrderByID(ctx context.Context, id string) (entity.Order, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var order OrderDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetOrderByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetOrderByID named query preparation err")
		return entity.Order{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Order{}, checkout.ErrOrderNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetOrderByID execution err")
		return entity.Order{}, err
	}

	return r.makeOrder(order), nil
}

func (r *ordersRepository) GetOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var itemsList []OrderItemDB

	argsKV := map[string]interface{}{
		"order_id": orderID,
	}

	query, args, err := sqlx.Named(queryGetOrderItems, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetOrderItems named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &itemsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetOrderItems execution err")
		return nil, err
	}

	items := make([]entity.OrderItem, 0, len(itemsList))
	for _, it := range itemsList {
		items = append(items, entity.OrderItem{
			ID:          it.ID.String,
			OrderID:     it.OrderID.String,
			ProductID:   it.ProductID.String,
			ProductName: it.ProductName.String,
			UnitPrice:   it.UnitPrice.Int64,
			Quantity:    int(it.Quantity.Int64),
			Subtotal:    it.Subtotal.Int64,
		})
	}

	return items, nil
}

func (r *ordersRepository) makeOrder(o OrderDB) entity.Order {
	return entity.Order{
		ID:             o.ID.String,
		SessionID:      o.SessionID.String,
		CustomerName:   o.CustomerName.String,
		DocumentNumber: o.DocumentNumber.String,
		Phone:          o.Phone.String,
		Email:          o.Email.String,
		CardLastFour:   o.CardLastFour.String,
		DeliveryMethod: entity.DeliveryMethod(o.DeliveryMethod.String),
		Subtotal:       o.Subtotal.Int64,
		Tax:            o.Tax.Int64,
		Total:          o.Total.Int64,
		Status:         entity.OrderStatus(o.Status.String),
		CreatedAt:      o.CreatedAt,
	}
}
