package catalog

import "time"

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"nombre"`
	Description  string `json:"descripcion"`
	Price        int64  `json:"precio"`
	Stock        int    `json:"stock"`
	Unit         string `json:"unidad"`
	ImageURL     string `json:"imagen_url"`
	Category     string `json:"categoria"`
	CategorySlug string `json:"categoria_slug"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"productos"`
	Total    int               `json:"total"`
	Page     int               `json:"pagina"`
	Limit    int               `json:"limite"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categorias"`
}
