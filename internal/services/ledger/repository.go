package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"comanda/internal/database"
	"comanda/internal/models"
)

// Repository implements Store over PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates a new ledger repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, database.GetUserByIDSQL, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.RestaurantID, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *Repository) RestaurantExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, database.RestaurantExistsSQL, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check restaurant: %w", err)
	}
	return exists, nil
}

func (r *Repository) CreateTable(ctx context.Context, table *models.Table) error {
	err := r.db.QueryRow(ctx, database.InsertTableSQL,
		table.ID, table.Name, table.UserID, table.RestaurantID).
		Scan(&table.IsOpen, &table.Total, &table.OpenedAt)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("a table with the same name is already open in this restaurant: %w", models.ErrConflict)
	}
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("user or restaurant not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

func (r *Repository) GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var table models.Table
	err := r.db.QueryRow(ctx, database.GetTableSQL, id).Scan(
		&table.ID, &table.Name, &table.UserID, &table.RestaurantID,
		&table.IsOpen, &table.Total, &table.OpenedAt, &table.ClosedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	tables := []models.Table{table}
	if err := r.loadDishes(ctx, tables); err != nil {
		return nil, err
	}
	return &tables[0], nil
}

// AttachDish appends the dish and recomputes the total in one transaction.
// The SELECT ... FOR UPDATE on the table row serializes concurrent
// attachments to the same table; the total is a full resum over the
// persisted sequence, so it can never drift from the dishes.
func (r *Repository) AttachDish(ctx context.Context, tableID, dishID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var table models.Table
	err = tx.QueryRow(ctx, database.LockTableSQL, tableID).Scan(
		&table.ID, &table.Name, &table.UserID, &table.RestaurantID,
		&table.IsOpen, &table.Total, &table.OpenedAt, &table.ClosedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("table not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock table: %w", err)
	}

	if !table.IsOpen {
		return fmt.Errorf("table is closed: %w", models.ErrConflict)
	}

	var dish models.Dish
	var category string
	err = tx.QueryRow(ctx, database.GetDishForAttachSQL, dishID).Scan(
		&dish.ID, &dish.Name, &dish.Price, &dish.Image, &category, &dish.RestaurantID, &dish.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("dish not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get dish: %w", err)
	}

	if dish.RestaurantID != table.RestaurantID {
		return fmt.Errorf("dish does not belong to the same restaurant as the table: %w", models.ErrInvalidReference)
	}

	if _, err := tx.Exec(ctx, database.AppendTableDishSQL, tableID, dishID); err != nil {
		return fmt.Errorf("failed to append dish: %w", err)
	}

	var total float64
	if err := tx.QueryRow(ctx, database.RecomputeTableTotalSQL, tableID).Scan(&total); err != nil {
		return fmt.Errorf("failed to recompute total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (r *Repository) CloseTable(ctx context.Context, id uuid.UUID) error {
	var table models.Table
	err := r.db.QueryRow(ctx, database.CloseTableSQL, id).Scan(
		&table.ID, &table.Name, &table.UserID, &table.RestaurantID,
		&table.IsOpen, &table.Total, &table.OpenedAt, &table.ClosedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// The guarded update matched nothing: either the table is gone
		// or it is already closed.
		if _, getErr := r.GetTable(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("table is already closed: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to close table: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTable(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteTableSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table not found: %w", models.ErrNotFound)
	}
	return nil
}

func (r *Repository) ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]models.Table, error) {
	return r.listTables(ctx, database.ListOpenTablesByUserSQL, userID)
}

func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, open bool) ([]models.Table, error) {
	return r.listTables(ctx, database.ListTablesByRestaurantSQL, restaurantID, open)
}

func (r *Repository) listTables(ctx context.Context, sql string, args ...interface{}) ([]models.Table, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		var table models.Table
		err := rows.Scan(&table.ID, &table.Name, &table.UserID, &table.Username,
			&table.RestaurantID, &table.IsOpen, &table.Total, &table.OpenedAt, &table.ClosedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}

	if err := r.loadDishes(ctx, tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// loadDishes resolves the ordered dish sequence for every table in place
func (r *Repository) loadDishes(ctx context.Context, tables []models.Table) error {
	if len(tables) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(tables))
	index := make(map[uuid.UUID]*models.Table, len(tables))
	for i := range tables {
		tables[i].Dishes = []models.Dish{}
		ids = append(ids, tables[i].ID)
		index[tables[i].ID] = &tables[i]
	}

	rows, err := r.db.Query(ctx, database.ListTableDishesSQL, ids)
	if err != nil {
		return fmt.Errorf("failed to list table dishes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tableID uuid.UUID
		var dish models.Dish
		var category string
		err := rows.Scan(&tableID, &dish.ID, &dish.Name, &dish.Price, &dish.Image,
			&category, &dish.RestaurantID, &dish.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan table dish: %w", err)
		}
		dish.Category = models.DishCategory(category)
		if table, ok := index[tableID]; ok {
			table.Dishes = append(table.Dishes, dish)
		}
	}
	return rows.Err()
}
