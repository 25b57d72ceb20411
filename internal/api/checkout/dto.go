package checkout

import "time"

type CheckoutRequest struct {
	CustomerName     string `json:"nombre" validate:"required"`
	DocumentNumber   string `json:"documento" validate:"required"`
	Phone            string `json:"telefono" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	RequiresShipping bool   `json:"requiere_envio"`
	Address          string `json:"direccion"`
	City             string `json:"ciudad"`
	PostalCode       string `json:"codigo_postal"`
	Notes            string `json:"notas"`
	PickupSite       string `json:"punto_recogida"`
	CardNumber       string `json:"tarjeta" validate:"required"`
	CardExpiry       string `json:"vencimiento" validate:"required"`
	CardCVV          string `json:"cvv" validate:"required"`
}

type CheckoutResponse struct {
	OrderID        string    `json:"orden_id"`
	Status         string    `json:"estado"`
	DeliveryMethod string    `json:"metodo_entrega"`
	PickupSite     string    `json:"punto_recogida,omitempty"`
	Subtotal       int64     `json:"subtotal"`
	Tax            int64     `json:"iva"`
	Total          int64     `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
}

type OrderDetailResponse struct {
	OrderID        string              `json:"orden_id"`
	CustomerName   string              `json:"nombre"`
	DeliveryMethod string              `json:"metodo_entrega"`
	Status         string              `json:"estado"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       int64               `json:"subtotal"`
	Tax            int64               `json:"iva"`
	Total          int64               `json:"total"`
	CreatedAt      time.Time           `json:"created_at"`
}

type OrderItemResponse struct {
	ProductName string `json:"nombre"`
	UnitPrice   int64  `json:"precio_unitario"`
	Quantity    int    `json:"cantidad"`
	Subtotal    int64  `json:"subtotal"`
}
