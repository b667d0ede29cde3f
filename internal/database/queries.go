package database

// Restaurant queries
const (
	InsertRestaurantSQL = `
		INSERT INTO restaurants (id, name, code)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	GetRestaurantByNameSQL = `
		SELECT id, name, code, owner_id, created_at
		FROM restaurants WHERE name = $1`

	SetRestaurantOwnerSQL = `
		UPDATE restaurants SET owner_id = $1
		WHERE id = $2 AND owner_id IS NULL`

	RestaurantExistsSQL = `
		SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = $1)`
)

// User queries
const (
	InsertUserSQL = `
		INSERT INTO users (id, username, email, password_hash, restaurant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	GetUserByIDSQL = `
		SELECT id, username, email, password_hash, restaurant_id, created_at
		FROM users WHERE id = $1`

	GetUserByUsernameSQL = `
		SELECT u.id, u.username, u.email, u.password_hash, u.restaurant_id, u.created_at, r.name
		FROM users u
		JOIN restaurants r ON r.id = u.restaurant_id
		WHERE u.username = $1`
)

// Dish queries
const (
	InsertDishSQL = `
		INSERT INTO dishes (id, name, price, image, category, restaurant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	ListDishesByRestaurantSQL = `
		SELECT id, name, price, image, category, restaurant_id, created_at
		FROM dishes
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`

	DeleteDishSQL = `
		DELETE FROM dishes WHERE id = $1`
)

// Table queries
const (
	InsertTableSQL = `
		INSERT INTO restaurant_tables (id, name, user_id, restaurant_id)
		VALUES ($1, $2, $3, $4)
		RETURNING is_open, total, opened_at`

	GetTableSQL = `
		SELECT id, name, user_id, restaurant_id, is_open, total, opened_at, closed_at
		FROM restaurant_tables WHERE id = $1`

	LockTableSQL = `
		SELECT id, name, user_id, restaurant_id, is_open, total, opened_at, closed_at
		FROM restaurant_tables WHERE id = $1
		FOR UPDATE`

	GetDishForAttachSQL = `
		SELECT id, name, price, image, category, restaurant_id, created_at
		FROM dishes WHERE id = $1`

	AppendTableDishSQL = `
		INSERT INTO table_dishes (table_id, dish_id)
		VALUES ($1, $2)`

	RecomputeTableTotalSQL = `
		UPDATE restaurant_tables
		SET total = (
			SELECT COALESCE(SUM(d.price), 0)
			FROM table_dishes td
			JOIN dishes d ON d.id = td.dish_id
			WHERE td.table_id = restaurant_tables.id
		)
		WHERE id = $1
		RETURNING total`

	CloseTableSQL = `
		UPDATE restaurant_tables
		SET is_open = FALSE, closed_at = NOW()
		WHERE id = $1 AND is_open
		RETURNING id, name, user_id, restaurant_id, is_open, total, opened_at, closed_at`

	DeleteTableSQL = `
		DELETE FROM restaurant_tables WHERE id = $1`

	ListOpenTablesByUserSQL = `
		SELECT t.id, t.name, t.user_id, u.username, t.restaurant_id, t.is_open, t.total, t.opened_at, t.closed_at
		FROM restaurant_tables t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = $1 AND t.is_open
		ORDER BY t.opened_at ASC`

	ListTablesByRestaurantSQL = `
		SELECT t.id, t.name, t.user_id, u.username, t.restaurant_id, t.is_open, t.total, t.opened_at, t.closed_at
		FROM restaurant_tables t
		JOIN users u ON u.id = t.user_id
		WHERE t.restaurant_id = $1 AND t.is_open = $2
		ORDER BY t.opened_at ASC`

	ListTableDishesSQL = `
		SELECT td.table_id, d.id, d.name, d.price, d.image, d.category, d.restaurant_id, d.created_at
		FROM table_dishes td
		JOIN dishes d ON d.id = td.dish_id
		WHERE td.table_id = ANY($1)
		ORDER BY td.id ASC`
)
