package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Rorical/iconx/internal/naming"
)

// Registry supplies raw vector markup for icons keyed by canonical
// PascalCase name.
type Registry interface {
	Render(name string) (string, error)
}

// IconNotFoundError reports a name the registry cannot draw.
type IconNotFoundError struct {
	Name string
}

func (e *IconNotFoundError) Error() string {
	return fmt.Sprintf("icon %q not found in rendering registry", e.Name)
}

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="lucide lucide-`

// MapRegistry is a Registry over an in-memory set of icon bodies. Bodies
// are the child elements of a 24x24 line-icon <svg> root.
type MapRegistry struct {
	mu     sync.RWMutex
	bodies map[string]string
}

// NewMapRegistry builds a registry from kebab- or Pascal-cased names.
func NewMapRegistry(bodies map[string]string) *MapRegistry {
	r := &MapRegistry{bodies: make(map[string]string, len(bodies))}
	for name, body := range bodies {
		r.bodies[naming.PascalCase(name)] = body
	}
	return r
}

// Register adds or replaces an icon body.
func (r *MapRegistry) Register(name, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bodies[naming.PascalCase(name)] = body
}

// Render returns the icon's full <svg> markup at the registry's default
// 24px size.
func (r *MapRegistry) Render(name string) (string, error) {
	r.mu.RLock()
	body, ok := r.bodies[name]
	r.mu.RUnlock()
	if !ok {
		return "", &IconNotFoundError{Name: name}
	}
	var b strings.Builder
	b.Grow(len(svgOpen) + len(body) + len(name) + 16)
	b.WriteString(svgOpen)
	b.WriteString(naming.KebabCase(name))
	b.WriteString(`">`)
	b.WriteString(body)
	b.WriteString("</svg>")
	return b.String(), nil
}

// Has reports whether the registry can draw name.
func (r *MapRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bodies[name]
	return ok
}

// Names lists the registered icon names, sorted.
func (r *MapRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.bodies))
	for name := range r.bodies {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var (
	lucideOnce sync.Once
	lucide     *MapRegistry
)

// Lucide returns the built-in registry of Lucide-style line icons.
func Lucide() *MapRegistry {
	lucideOnce.Do(func() {
		lucide = NewMapRegistry(lucideBodies)
	})
	return lucide
}
