package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/samandjonah/wedding-api/internal/model"
)

// RegistryStore persists honeymoon categories and items.
type RegistryStore struct {
	db *sql.DB
}

func NewRegistryStore(db *sql.DB) *RegistryStore {
	return &RegistryStore{db: db}
}

// --- Category methods ---

const categoryCols = `id, name, display_order, created_at`

func scanCategory(scanner interface{ Scan(...any) error }) (*model.HoneymoonCategory, error) {
	var c model.HoneymoonCategory
	err := scanner.Scan(&c.ID, &c.Name, &c.DisplayOrder, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *RegistryStore) CreateCategory(name string, displayOrder int) (*model.HoneymoonCategory, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO honeymoon_categories (id, name, display_order) VALUES (?, ?, ?)`,
		id, name, displayOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return s.GetCategoryByID(id)
}

func (s *RegistryStore) GetCategoryByID(id string) (*model.HoneymoonCategory, error) {
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM honeymoon_categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *RegistryStore) ListCategories() ([]model.HoneymoonCategory, error) {
	rows, err := s.db.Query(`SELECT ` + categoryCols + ` FROM honeymoon_categories ORDER BY display_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.HoneymoonCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *RegistryStore) UpdateCategory(id, name string, displayOrder int) (*model.HoneymoonCategory, error) {
	_, err := s.db.Exec(
		`UPDATE honeymoon_categories SET name = ?, display_order = ? WHERE id = ?`,
		name, displayOrder, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.GetCategoryByID(id)
}

func (s *RegistryStore) DeleteCategory(id string) error {
	_, err := s.db.Exec(`DELETE FROM honeymoon_categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// --- Item methods ---

const itemCols = `id, category_id, name, description, price_cents, image_url, total_contributed_cents, is_fully_funded, display_order, created_at, updated_at`

func scanItem(scanner interface{ Scan(...any) error }) (*model.HoneymoonItem, error) {
	var item model.HoneymoonItem
	var categoryID, imageURL sql.NullString
	var funded int

	err := scanner.Scan(
		&item.ID, &categoryID, &item.Name, &item.Description, &item.PriceCents,
		&imageURL, &item.TotalContributedCents, &funded, &item.DisplayOrder,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.IsFullyFunded = funded != 0
	if categoryID.Valid {
		item.CategoryID = &categoryID.String
	}
	if imageURL.Valid {
		item.ImageURL = &imageURL.String
	}
	return &item, nil
}

func (s *RegistryStore) CreateItem(categoryID *string, name, description string, priceCents int64, displayOrder int) (*model.HoneymoonItem, error) {
	id := uuid.New().String()
	var catID sql.NullString
	if categoryID != nil {
		catID = sql.NullString{String: *categoryID, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO honeymoon_items (id, category_id, name, description, price_cents, display_order) VALUES (?, ?, ?, ?, ?, ?)`,
		id, catID, name, description, priceCents, displayOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *RegistryStore) GetItemByID(id string) (*model.HoneymoonItem, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM honeymoon_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *RegistryStore) ListItems() ([]model.HoneymoonItem, error) {
	rows, err := s.db.Query(`SELECT ` + itemCols + ` FROM honeymoon_items ORDER BY display_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (s *RegistryStore) ListItemsByCategory(categoryID string) ([]model.HoneymoonItem, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM honeymoon_items WHERE category_id = ? ORDER BY display_order ASC, name ASC`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (s *RegistryStore) ListUncategorizedItems() ([]model.HoneymoonItem, error) {
	rows, err := s.db.Query(`SELECT ` + itemCols + ` FROM honeymoon_items WHERE category_id IS NULL ORDER BY display_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list uncategorized items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (s *RegistryStore) UpdateItem(id string, categoryID *string, name, description string, priceCents int64, displayOrder int) (*model.HoneymoonItem, error) {
	var catID sql.NullString
	if categoryID != nil {
		catID = sql.NullString{String: *categoryID, Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE honeymoon_items SET category_id = ?, name = ?, description = ?, price_cents = ?, display_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		catID, name, description, priceCents, displayOrder, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *RegistryStore) DeleteItem(id string) error {
	_, err := s.db.Exec(`DELETE FROM honeymoon_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *RegistryStore) SetItemImage(id, imageURL string) (*model.HoneymoonItem, error) {
	_, err := s.db.Exec(
		`UPDATE honeymoon_items SET image_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		imageURL, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set item image: %w", err)
	}
	return s.GetItemByID(id)
}

// SetItemTotals writes the re-derived funding aggregates back to the item row.
// Callers compute both values from the contribution rows; this never does
// arithmetic of its own.
func (s *RegistryStore) SetItemTotals(id string, totalCents int64, fullyFunded bool) error {
	_, err := s.db.Exec(
		`UPDATE honeymoon_items SET total_contributed_cents = ?, is_fully_funded = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		totalCents, boolToInt(fullyFunded), id,
	)
	if err != nil {
		return fmt.Errorf("set item totals: %w", err)
	}
	return nil
}

func (s *RegistryStore) CountItems() (int64, error) {
	var count int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM honeymoon_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

func collectItems(rows *sql.Rows) ([]model.HoneymoonItem, error) {
	var items []model.HoneymoonItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
