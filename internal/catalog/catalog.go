package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/Rorical/iconx/internal/naming"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// Category groups icon names under a display heading.
type Category struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Icons       []string `yaml:"icons"`
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Catalog is the read-only index of categories and icon names. It is safe
// for concurrent use once built.
type Catalog struct {
	categories []Category
	byID       map[string]int
	names      []string
	owner      map[string]int
	folded     map[string]string
}

var (
	loadOnce sync.Once
	loaded   *Catalog
)

// Load returns the process-wide catalog parsed from the embedded data. The
// embedded file is validated by tests, so a parse failure is a build defect
// and panics.
func Load() *Catalog {
	loadOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data: %v", err))
		}
		loaded = c
	})
	return loaded
}

// Parse builds a catalog from YAML category data.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, cat := range file.Categories {
		if strings.TrimSpace(cat.ID) == "" {
			return nil, fmt.Errorf("categories[%d]: missing id", i)
		}
	}
	return New(file.Categories), nil
}

// New builds a catalog from categories in display order. Icon names that
// appear in several categories are listed once, under their first category.
func New(categories []Category) *Catalog {
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[string]int, len(categories)),
		owner:      make(map[string]int),
		folded:     make(map[string]string),
	}
	for _, cat := range categories {
		if _, dup := c.byID[cat.ID]; dup {
			continue
		}
		icons := make([]string, 0, len(cat.Icons))
		for _, name := range cat.Icons {
			name = strings.TrimSpace(name)
			if name != "" {
				icons = append(icons, name)
			}
		}
		cat.Icons = icons
		idx := len(c.categories)
		c.categories = append(c.categories, cat)
		c.byID[cat.ID] = idx

		for _, name := range icons {
			if _, seen := c.owner[name]; seen {
				continue
			}
			c.owner[name] = idx
			c.names = append(c.names, name)
			c.folded[strings.ToLower(name)] = name
		}
	}
	return c
}

// Len reports the number of distinct icon names.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Categories returns a copy of the categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		cat.Icons = append([]string(nil), cat.Icons...)
		out[i] = cat
	}
	return out
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	cat := c.categories[idx]
	cat.Icons = append([]string(nil), cat.Icons...)
	return cat, true
}

// CategoryOf returns the first category listing name.
func (c *Catalog) CategoryOf(name string) (Category, bool) {
	idx, ok := c.owner[name]
	if !ok {
		return Category{}, false
	}
	cat := c.categories[idx]
	cat.Icons = append([]string(nil), cat.Icons...)
	return cat, true
}

// AllIconNames returns every distinct icon name in category order, then
// in-category order.
func (c *Catalog) AllIconNames() []string {
	return append([]string(nil), c.names...)
}

// Contains reports whether name is a canonical catalog entry.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.owner[name]
	return ok
}

// Canonical resolves user input ("heart-crack", "heartcrack", "HeartCrack")
// to the catalog's canonical spelling.
func (c *Catalog) Canonical(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if c.Contains(input) {
		return input, true
	}
	if pascal := naming.PascalCase(input); c.Contains(pascal) {
		return pascal, true
	}
	if name, ok := c.folded[strings.ToLower(input)]; ok {
		return name, true
	}
	if name, ok := c.folded[strings.ToLower(naming.PascalCase(input))]; ok {
		return name, true
	}
	return "", false
}

// Suggest returns up to limit catalog names that loosely resemble input,
// for "did you mean" hints.
func (c *Catalog) Suggest(input string, limit int) []string {
	input = strings.TrimSpace(input)
	if input == "" || limit <= 0 {
		return nil
	}
	query := naming.PascalCase(input)

	ranks := fuzzy.RankFindNormalizedFold(query, c.names)
	sort.Stable(ranks)
	out := make([]string, 0, limit)
	for _, r := range ranks {
		if len(out) == limit {
			return out
		}
		out = append(out, r.Target)
	}
	if len(out) > 0 {
		return out
	}

	type candidate struct {
		name string
		dist int
	}
	lower := strings.ToLower(query)
	var near []candidate
	for _, name := range c.names {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(name))
		if d <= 2 {
			near = append(near, candidate{name: name, dist: d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].dist < near[j].dist })
	for _, cand := range near {
		if len(out) == limit {
			break
		}
		out = append(out, cand.name)
	}
	return out
}

// Markdown renders the catalog as a markdown table.
func (c *Catalog) Markdown() string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	builder.WriteString(fmt.Sprintf("%d icons in %d categories.\n\n", c.Len(), len(c.categories)))
	builder.WriteString("| Category | Description | Icons |\n")
	builder.WriteString("| --- | --- | --- |\n")
	for _, cat := range c.categories {
		builder.WriteString("| ")
		builder.WriteString(cat.Name)
		builder.WriteString(" | ")
		builder.WriteString(cat.Description)
		builder.WriteString(" | ")
		builder.WriteString(strings.Join(cat.Icons, ", "))
		builder.WriteString(" |\n")
	}
	return builder.String()
}
