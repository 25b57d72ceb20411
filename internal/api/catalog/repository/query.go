package catalogRepository

const (
	queryGetProducts = `
		SELECT
			p.id,
			p.category_id,
			p.name,
			p.description,
			p.price,
			p.stock,
			p.unit,
			p.image_url,
			p.is_active,
			p.created_at,
			p.updated_at,
			c.name AS category_name,
			c.slug AS category_slug
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = TRUE
		  AND (:search = '' OR p.name ILIKE '%' || :search || '%')
		  AND (:category_slug = '' OR c.slug = :category_slug)
		ORDER BY p.name ASC
		LIMIT :limit OFFSET :offset
	`

	queryCountProducts = `
		SELECT COUNT(*)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = TRUE
		  AND (:search = '' OR p.name ILIKE '%' || :search || '%')
		  AND (:category_slug = '' OR c.slug = :category_slug)
	`

	queryGetProductByID = `
		SELECT
			p.id,
			p.category_id,
			p.name,
			p.description,
			p.price,
			p.stock,
			p.unit,
			p.image_url,
			p.is_active,
			p.created_at,
			p.updated_at,
			c.name AS category_name,
			c.slug AS category_slug
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = :id
	`

	queryGetProductsByIDs = `
		SELECT
			id,
			category_id,
			name,
			description,
			price,
			stock,
			unit,
			image_url,
			is_active,
			created_at,
			updated_at
		FROM products
		WHERE id IN (?)
	`

	queryDecrementStock = `
		UPDATE products
		SET
			stock = stock - :quantity,
			updated_at = NOW()
		WHERE id = :id AND stock >= :quantity
	`

	queryGetAllCategories = `
		SELECT
			id,
			name,
			slug,
			is_active,
			created_at,
			updated_at
		FROM categories
		WHERE is_active = TRUE
		ORDER BY name ASC
	`

	queryGetCategoryBySlug = `
		SELECT
			id,
			name,
			slug,
			is_active,
			created_at,
			updated_at
		FROM categories
		WHERE slug = :slug
	`
)
