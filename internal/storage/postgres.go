package storage

import (
	"context"
	"database/sql"
	"fmt"

	"micarta/internal/domain"
)

// PostgresMenuRepository reads the menu catalog: sections, their items and
// each item's sides, with optional pricing specs on items and sides.
type PostgresMenuRepository struct {
	DB *sql.DB
}

func NewPostgresMenuRepository(db *sql.DB) *PostgresMenuRepository {
	return &PostgresMenuRepository{DB: db}
}

func (r *PostgresMenuRepository) FetchMenu(ctx context.Context) (domain.MenuPayload, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title
		FROM menu_sections
		ORDER BY position, id`)
	if err != nil {
		return domain.MenuPayload{}, err
	}
	defer rows.Close()

	var payload domain.MenuPayload
	type sectionRow struct {
		id    int
		title string
	}
	var sectionRows []sectionRow
	for rows.Next() {
		var sr sectionRow
		if err := rows.Scan(&sr.id, &sr.title); err != nil {
			continue
		}
		sectionRows = append(sectionRows, sr)
	}
	rows.Close()

	for _, sr := range sectionRows {
		items, err := r.fetchItems(ctx, sr.id)
		if err != nil {
			return domain.MenuPayload{}, err
		}
		payload.Menu = append(payload.Menu, domain.MenuSection{Title: sr.title, Items: items})
	}

	return payload, nil
}

func (r *PostgresMenuRepository) fetchItems(ctx context.Context, sectionID int) ([]domain.MenuEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), COALESCE(photo_url, ''), COALESCE(price, 0),
		       COALESCE(pricing_mode, ''), COALESCE(pricing_unit, ''), COALESCE(price_per_unit, 0), COALESCE(base_unit, 0)
		FROM menu_items
		WHERE section_id = $1
		ORDER BY position, id`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type itemRow struct {
		id    int
		entry domain.MenuEntry
	}
	var itemRows []itemRow
	for rows.Next() {
		var ir itemRow
		var mode, unit string
		var pricePerUnit, baseUnit float64
		if err := rows.Scan(&ir.id, &ir.entry.Title, &ir.entry.Description, &ir.entry.PhotoURL, &ir.entry.Price,
			&mode, &unit, &pricePerUnit, &baseUnit); err != nil {
			continue
		}
		if mode != "" {
			ir.entry.Pricing = &domain.PricingSpec{
				Mode:         domain.PricingMode(mode),
				Unit:         domain.PricingUnit(unit),
				PricePerUnit: pricePerUnit,
				BaseUnit:     baseUnit,
			}
		}
		itemRows = append(itemRows, ir)
	}
	rows.Close()

	var items []domain.MenuEntry
	for _, ir := range itemRows {
		sides, err := r.fetchSides(ctx, ir.id)
		if err != nil {
			return nil, err
		}
		ir.entry.Sides = sides
		items = append(items, ir.entry)
	}
	return items, nil
}

func (r *PostgresMenuRepository) fetchSides(ctx context.Context, itemID int) ([]domain.MenuSide, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(photo_url, ''), COALESCE(price, 0),
		       COALESCE(pricing_mode, ''), COALESCE(pricing_unit, ''), COALESCE(price_per_unit, 0), COALESCE(base_unit, 0)
		FROM menu_sides
		WHERE item_id = $1
		ORDER BY position, id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sides []domain.MenuSide
	for rows.Next() {
		var side domain.MenuSide
		var id int
		var mode, unit string
		var pricePerUnit, baseUnit float64
		if err := rows.Scan(&id, &side.Name, &side.PhotoURL, &side.Price,
			&mode, &unit, &pricePerUnit, &baseUnit); err != nil {
			continue
		}
		side.ID = fmt.Sprintf("%d", id)
		if mode != "" {
			side.Pricing = &domain.PricingSpec{
				Mode:         domain.PricingMode(mode),
				Unit:         domain.PricingUnit(unit),
				PricePerUnit: pricePerUnit,
				BaseUnit:     baseUnit,
			}
		}
		sides = append(sides, side)
	}
	return sides, nil
}

func (r *PostgresMenuRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_sections (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			section_id INT NOT NULL REFERENCES menu_sections(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT,
			photo_url TEXT,
			price NUMERIC,
			pricing_mode TEXT,
			pricing_unit TEXT,
			price_per_unit NUMERIC,
			base_unit NUMERIC,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS menu_sides (
			id SERIAL PRIMARY KEY,
			item_id INT NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			photo_url TEXT,
			price NUMERIC,
			pricing_mode TEXT,
			pricing_unit TEXT,
			price_per_unit NUMERIC,
			base_unit NUMERIC,
			position INT NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
