package store

import (
	"testing"

	"github.com/samandjonah/wedding-api/internal/database"
)

func setupRegistryTestDB(t *testing.T) *RegistryStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRegistryStore(db)
}

func TestCategoryCreateAndList(t *testing.T) {
	s := setupRegistryTestDB(t)

	s.CreateCategory("Flights", 2)
	s.CreateCategory("Activities", 1)

	categories, err := s.ListCategories()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Activities" {
		t.Errorf("expected display_order sorting, got %q first", categories[0].Name)
	}
}

func TestCategoryDeleteLeavesItemsUncategorized(t *testing.T) {
	s := setupRegistryTestDB(t)

	cat, _ := s.CreateCategory("Hotels", 1)
	item, _ := s.CreateItem(&cat.ID, "Beach resort", "Three nights", 50000, 1)

	if err := s.DeleteCategory(cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	// category_id references honeymoon_categories with ON DELETE SET NULL
	got, _ := s.GetItemByID(item.ID)
	if got.CategoryID != nil {
		t.Error("item should be uncategorized after category deletion")
	}

	uncategorized, err := s.ListUncategorizedItems()
	if err != nil {
		t.Fatalf("list uncategorized: %v", err)
	}
	if len(uncategorized) != 1 {
		t.Errorf("expected 1 uncategorized item, got %d", len(uncategorized))
	}
}

func TestItemCreateDefaults(t *testing.T) {
	s := setupRegistryTestDB(t)

	item, err := s.CreateItem(nil, "Dinner cruise", "", 15000, 1)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.TotalContributedCents != 0 {
		t.Errorf("new item total = %d, want 0", item.TotalContributedCents)
	}
	if item.IsFullyFunded {
		t.Error("new item should not be fully funded")
	}
	if item.CategoryID != nil {
		t.Error("expected nil category")
	}
	if item.ImageURL != nil {
		t.Error("expected nil image url")
	}
}

func TestSetItemTotals(t *testing.T) {
	s := setupRegistryTestDB(t)

	item, _ := s.CreateItem(nil, "Dinner cruise", "", 15000, 1)
	if err := s.SetItemTotals(item.ID, 15000, true); err != nil {
		t.Fatalf("set item totals: %v", err)
	}

	got, _ := s.GetItemByID(item.ID)
	if got.TotalContributedCents != 15000 {
		t.Errorf("total = %d, want 15000", got.TotalContributedCents)
	}
	if !got.IsFullyFunded {
		t.Error("item should be fully funded")
	}
}

func TestSetItemImage(t *testing.T) {
	s := setupRegistryTestDB(t)

	item, _ := s.CreateItem(nil, "Dinner cruise", "", 15000, 1)
	got, err := s.SetItemImage(item.ID, "/uploads/registry/abc.jpg")
	if err != nil {
		t.Fatalf("set item image: %v", err)
	}
	if got.ImageURL == nil || *got.ImageURL != "/uploads/registry/abc.jpg" {
		t.Errorf("image url = %v, want /uploads/registry/abc.jpg", got.ImageURL)
	}
}

func TestItemGetByIDNotFound(t *testing.T) {
	s := setupRegistryTestDB(t)

	item, err := s.GetItemByID("nope")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if item != nil {
		t.Error("expected nil for nonexistent id")
	}
}
