// Package search ranks catalog icon names against a free-text query.
package search

import (
	"sort"
	"strings"

	"github.com/Rorical/iconx/internal/catalog"
)

// Order selects how matches are ordered inside one ranking tier.
type Order int

const (
	// CatalogOrder keeps category order, then in-category order. Used by
	// category browsing and related-icon lists.
	CatalogOrder Order = iota
	// ShortestFirst sorts by ascending name length, falling back to catalog
	// order. Used by free-text search.
	ShortestFirst
)

type entry struct {
	name   string
	folded string
}

// Index is an immutable, concurrency-safe search index.
type Index struct {
	catalog *catalog.Catalog
	entries []entry
}

// NewIndex indexes every name in c.
func NewIndex(c *catalog.Catalog) *Index {
	names := c.AllIconNames()
	entries := make([]entry, len(names))
	for i, name := range names {
		entries[i] = entry{name: name, folded: strings.ToLower(name)}
	}
	return &Index{catalog: c, entries: entries}
}

// Catalog returns the catalog backing the index.
func (ix *Index) Catalog() *catalog.Catalog {
	return ix.catalog
}

// Search is the free-text path: exact, prefix, then substring matches,
// shortest names first within each tier. limit <= 0 means no limit.
func (ix *Index) Search(query string, limit int) []string {
	return rank(ix.entries, query, limit, ShortestFirst)
}

// Browse ranks like Search but keeps catalog order inside each tier.
func (ix *Index) Browse(query string, limit int) []string {
	return rank(ix.entries, query, limit, CatalogOrder)
}

// BrowseCategory ranks only the icons of one category, in catalog order.
// Unknown categories yield no results.
func (ix *Index) BrowseCategory(categoryID, query string, limit int) []string {
	cat, ok := ix.catalog.Category(categoryID)
	if !ok {
		return nil
	}
	return rank(ix.subset(cat.Icons), query, limit, CatalogOrder)
}

// Related lists the other icons of name's category in catalog order.
func (ix *Index) Related(name string, limit int) []string {
	cat, ok := ix.catalog.CategoryOf(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(cat.Icons))
	for _, icon := range cat.Icons {
		if icon == name {
			continue
		}
		out = append(out, icon)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (ix *Index) subset(names []string) []entry {
	out := make([]entry, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup || !ix.catalog.Contains(name) {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, entry{name: name, folded: strings.ToLower(name)})
	}
	return out
}

func rank(entries []entry, query string, limit int, order Order) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		n := len(entries)
		if limit > 0 && limit < n {
			n = limit
		}
		out := make([]string, n)
		for i := 0; i < n; i++ {
			out[i] = entries[i].name
		}
		return out
	}

	var exact, prefix, contains []string
	for _, e := range entries {
		switch {
		case e.folded == q:
			exact = append(exact, e.name)
		case strings.HasPrefix(e.folded, q):
			prefix = append(prefix, e.name)
		case strings.Contains(e.folded, q):
			contains = append(contains, e.name)
		}
	}
	if order == ShortestFirst {
		byLength(prefix)
		byLength(contains)
	}

	out := make([]string, 0, len(exact)+len(prefix)+len(contains))
	out = append(out, exact...)
	out = append(out, prefix...)
	out = append(out, contains...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func byLength(names []string) {
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) < len(names[j]) })
}
