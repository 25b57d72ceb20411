package entity

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDIENTE"
	OrderStatusConfirmed OrderStatus = "CONFIRMADA"
	OrderStatusCancelled OrderStatus = "CANCELADA"
)

type DeliveryMethod string

const (
	DeliveryMethodShipping DeliveryMethod = "ENVIO"
	DeliveryMethodPickup   DeliveryMethod = "RECOGIDA"
)

type Order struct {
	ID             string         `json:"id" db:"id"`
	SessionID      string         `json:"session_id" db:"session_id"`
	CustomerName   string         `json:"nombre" db:"customer_name"`
	DocumentNumber string         `json:"documento" db:"document_number"`
	Phone          string         `json:"telefono" db:"phone"`
	Email          string         `json:"email" db:"email"`
	CardLastFour   string         `json:"tarjeta_terminada_en" db:"card_last_four"`
	DeliveryMethod DeliveryMethod `json:"metodo_entrega" db:"delivery_method"`
	Subtotal       int64          `json:"subtotal" db:"subtotal"`
	Tax            int64          `json:"iva" db:"tax"`
	Total          int64          `json:"total" db:"total"`
	Status         OrderStatus    `json:"estado" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

type OrderItem struct {
	ID          string `json:"id" db:"id"`
	OrderID     string `json:"orden_id" db:"order_id"`
	ProductID   string `json:"producto_id" db:"product_id"`
	ProductName string `json:"nombre" db:"product_name"`
	UnitPrice   int64  `json:"precio_unitario" db:"unit_price"`
	Quantity    int    `json:"cantidad" db:"quantity"`
	Subtotal    int64  `json:"subtotal" db:"subtotal"`
}

type Shipment struct {
	ID         string `json:"id" db:"id"`
	OrderID    string `json:"orden_id" db:"order_id"`
	Address    string `json:"direccion" db:"address"`
	City       string `json:"ciudad" db:"city"`
	PostalCode string `json:"codigo_postal" db:"postal_code"`
	Notes      string `json:"notas" db:"notes"`
	PickupSite string `json:"punto_recogida" db:"pickup_site"`
}
