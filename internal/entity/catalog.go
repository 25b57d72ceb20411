package entity

import "time"

type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"nombre" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	IsActive  bool      `json:"activo" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Product struct {
	ID          string    `json:"id" db:"id"`
	CategoryID  string    `json:"categoria_id" db:"category_id"`
	Name        string    `json:"nombre" db:"name"`
	Description string    `json:"descripcion" db:"description"`
	Price       int64     `json:"precio" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	Unit        string    `json:"unidad" db:"unit"`
	ImageURL    string    `json:"imagen_url" db:"image_url"`
	IsActive    bool      `json:"activo" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type ProductWithCategory struct {
	Product
	CategoryName string `json:"categoria" db:"category_name"`
	CategorySlug string `json:"categoria_slug" db:"category_slug"`
}
