package shortcut

import "github.com/charmbracelet/bubbles/key"

const defaultCategory = "General"

// Group is one help section.
type Group struct {
	Category string
	Bindings []Binding
}

// Groups buckets the active bindings by their Category, in order of each
// category's first appearance.
func (d *Dispatcher) Groups() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, b := range d.Bindings() {
		cat := b.Category
		if cat == "" {
			cat = defaultCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, Group{Category: cat})
		}
		groups[i].Bindings = append(groups[i].Bindings, b)
	}
	return groups
}

// HelpBinding converts b for the bubbles help view.
func HelpBinding(b Binding) key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Combo()),
		key.WithHelp(b.Combo(), b.Description),
	)
}

// ShortHelp lists the first binding of every group. With FullHelp it makes
// Dispatcher a help.KeyMap.
func (d *Dispatcher) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, g := range d.Groups() {
		out = append(out, HelpBinding(g.Bindings[0]))
	}
	return out
}

// FullHelp returns one help column per category.
func (d *Dispatcher) FullHelp() [][]key.Binding {
	groups := d.Groups()
	out := make([][]key.Binding, 0, len(groups))
	for _, g := range groups {
		col := make([]key.Binding, 0, len(g.Bindings))
		for _, b := range g.Bindings {
			col = append(col, HelpBinding(b))
		}
		out = append(out, col)
	}
	return out
}
