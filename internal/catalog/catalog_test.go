package catalog

import (
	"strings"
	"testing"
)

func testCatalog() *Catalog {
	return New([]Category{
		{ID: "social", Name: "Social", Icons: []string{"Heart", "Star", "HeartCrack"}},
		{ID: "health", Name: "Health", Icons: []string{"HeartPulse", "Heart", "Pill"}},
		{ID: "social", Name: "Duplicate", Icons: []string{"Ignored"}},
	})
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	c := Load()
	if c.Len() == 0 {
		t.Fatal("expected embedded catalog to include icons")
	}
	if Load() != c {
		t.Fatal("expected Load to memoize the catalog")
	}

	seenCategory := make(map[string]struct{})
	for _, cat := range c.Categories() {
		if strings.TrimSpace(cat.Name) == "" {
			t.Errorf("category %s missing name", cat.ID)
		}
		if _, dup := seenCategory[cat.ID]; dup {
			t.Errorf("duplicate category id %s", cat.ID)
		}
		seenCategory[cat.ID] = struct{}{}
		if len(cat.Icons) == 0 {
			t.Errorf("category %s has no icons", cat.ID)
		}
	}
}

func TestAllIconNamesOrderAndDedup(t *testing.T) {
	c := testCatalog()
	got := c.AllIconNames()
	want := []string{"Heart", "Star", "HeartCrack", "HeartPulse", "Pill"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("AllIconNames = %v, want %v", got, want)
	}
	if c.Contains("Ignored") {
		t.Fatal("expected duplicate category id to be skipped")
	}
}

func TestEmbeddedNamesAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for _, name := range Load().AllIconNames() {
		if _, dup := seen[name]; dup {
			t.Errorf("duplicate icon name %s in flattened list", name)
		}
		seen[name] = struct{}{}
	}
}

func TestCategoryOfReturnsFirstOwner(t *testing.T) {
	c := testCatalog()
	cat, ok := c.CategoryOf("Heart")
	if !ok || cat.ID != "social" {
		t.Fatalf("CategoryOf(Heart) = %q, %v; want social", cat.ID, ok)
	}
	cat, ok = c.CategoryOf("Pill")
	if !ok || cat.ID != "health" {
		t.Fatalf("CategoryOf(Pill) = %q, %v; want health", cat.ID, ok)
	}
	if _, ok := c.CategoryOf("Nope"); ok {
		t.Fatal("expected unknown icon to have no category")
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	c := testCatalog()
	cats := c.Categories()
	cats[0].Icons[0] = "Mutated"
	if !c.Contains("Heart") || c.Categories()[0].Icons[0] != "Heart" {
		t.Fatal("expected Categories to return a defensive copy")
	}
}

func TestCanonical(t *testing.T) {
	c := testCatalog()
	cases := map[string]string{
		"Heart":       "Heart",
		"heart":       "Heart",
		"heart-crack": "HeartCrack",
		"HEARTPULSE":  "HeartPulse",
		" pill ":      "Pill",
	}
	for in, want := range cases {
		got, ok := c.Canonical(in)
		if !ok || got != want {
			t.Errorf("Canonical(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := c.Canonical("ThisIconDoesNotExist"); ok {
		t.Error("expected unknown name to stay unresolved")
	}
}

func TestSuggest(t *testing.T) {
	c := testCatalog()
	got := c.Suggest("hrtpls", 3)
	if len(got) == 0 || got[0] != "HeartPulse" {
		t.Fatalf("Suggest(hrtpls) = %v, want HeartPulse first", got)
	}
	got = c.Suggest("Starr", 3)
	if len(got) != 1 || got[0] != "Star" {
		t.Fatalf("Suggest(Starr) = %v, want [Star]", got)
	}
	if got := c.Suggest("", 3); got != nil {
		t.Fatalf("expected no suggestions for empty input, got %v", got)
	}
}

func TestMarkdownListsCategories(t *testing.T) {
	md := Load().Markdown()
	for _, cat := range Load().Categories() {
		if !strings.Contains(md, cat.Name) {
			t.Errorf("markdown missing category %s", cat.Name)
		}
	}
}

func TestParseRejectsMissingID(t *testing.T) {
	_, err := Parse([]byte("categories:\n  - name: Broken\n    icons: [A]\n"))
	if err == nil {
		t.Fatal("expected error for category without id")
	}
}
