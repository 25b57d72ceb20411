package cart

type AddItemRequest struct {
	ProductID string `json:"producto_id" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"required,min=1"`
}

type UpdateItemRequest struct {
	Quantity int `json:"cantidad" validate:"min=0"`
}

type ItemResponse struct {
	ProductID   string `json:"producto_id"`
	ProductName string `json:"nombre"`
	UnitPrice   int64  `json:"precio_unitario"`
	Quantity    int    `json:"cantidad"`
	Subtotal    int64  `json:"subtotal"`
}

type CartResponse struct {
	SessionID  string         `json:"session_id"`
	Items      []ItemResponse `json:"items"`
	TotalUnits int            `json:"total_unidades"`
	Subtotal   int64          `json:"subtotal"`
	Tax        int64          `json:"iva"`
	Total      int64          `json:"total"`
}
