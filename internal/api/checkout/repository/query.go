package checkoutRepository

const (
	queryCreateOrder = `
		INSERT INTO orders (
			id,
			session_id,
			customer_name,
			document_number,
			phone,
			email,
			card_last_four,
			delivery_method,
			subtotal,
			tax,
			total,
			status,
			created_at
		) VALUES (
			:id,
			:session_id,
			:customer_name,
			:document_number,
			:phone,
			:email,
			:card_last_four,
			:delivery_method,
			:subtotal,
			:tax,
			:total,
			:status,
			:created_at
		)
	`

	queryCreateOrderItem = `
		INSERT INTO order_items (
			id,
			order_id,
			product_id,
			product_name,
			unit_price,
			quantity,
			subtotal
		) VALUES (
			:id,
			:order_id,
			:product_id,
			:product_name,
			:unit_price,
			:quantity,
			:subtotal
		)
	`

	queryCreateShipment = `
		INSERT INTO shipments (
			id,
			order_id,
			address,
			city,
			postal_code,
			notes,
			pickup_site
		) VALUES (
			:id,
			:order_id,
			:address,
			:city,
			:postal_code,
			:notes,
			:pickup_site
		)
	`

	queryDecrementStock = `
		UPDATE products
		SET
			stock = stock - :quantity,
			updated_at = NOW()
		WHERE id = :id AND stock >= :quantity
	`

	queryGetOrderByID = `
		SELECT
			id,
			session_id,
			customer_name,
			document_number,
			phone,
			email,
			card_last_four,
			delivery_method,
			subtotal,
			tax,
			total,
			status,
			created_at
		FROM orders
		WHERE id = :id
	`

	queryGetOrderItems = `
		SELECT
			id,
			order_id,
			product_id,
			product_name,
			unit_price,
			quantity,
			subtotal
		FROM order_items
		WHERE order_id = :order_id
		ORDER BY product_name ASC
	`
)
