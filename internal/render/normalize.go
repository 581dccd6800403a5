package render

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Params customizes a rendered icon. The zero value is invalid; start from
// DefaultParams.
type Params struct {
	Size        float64
	StrokeWidth float64
	Color       string
	FillColor   string
	ClassNames  []string
	StripIDs    bool
}

// DefaultParams matches the registry's native 24px, 2px-stroke artwork.
func DefaultParams() Params {
	return Params{Size: 24, StrokeWidth: 2}
}

// Positive reports whether v is a finite number greater than zero.
func Positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Validate checks the numeric constraints.
func (p Params) Validate() error {
	if !Positive(p.Size) {
		return fmt.Errorf("size must be greater than zero, got %v", p.Size)
	}
	if !Positive(p.StrokeWidth) {
		return fmt.Errorf("stroke width must be greater than zero, got %v", p.StrokeWidth)
	}
	return nil
}

// Normalizer turns registry markup into customized, compact SVG.
type Normalizer struct {
	registry Registry
}

func NewNormalizer(registry Registry) *Normalizer {
	return &Normalizer{registry: registry}
}

// Normalize renders name and applies p. A name missing from the registry
// yields *IconNotFoundError; no placeholder is substituted.
func (n *Normalizer) Normalize(name string, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	raw, err := n.registry.Render(name)
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return "", fmt.Errorf("parse markup for %s: %w", name, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return "", fmt.Errorf("markup for %s: %w", name, errNoSVGRoot)
	}

	compact(&doc.Element)

	root.CreateAttr("width", formatNumber(p.Size))
	root.CreateAttr("height", formatNumber(p.Size))
	root.CreateAttr("stroke-width", formatNumber(p.StrokeWidth))

	if p.StripIDs {
		stripIDs(root)
	}
	if len(p.ClassNames) > 0 {
		mergeClasses(root, p.ClassNames)
	}
	if p.Color != "" {
		paint(root, "stroke", p.Color)
	}
	if p.FillColor != "" {
		paint(root, "fill", p.FillColor)
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serialize %s: %w", name, err)
	}
	return out, nil
}

var errNoSVGRoot = errors.New("root element is not <svg>")

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// compact drops whitespace-only text, comments, processing instructions
// and directives so equal icons serialize to equal strings.
func compact(e *etree.Element) {
	for i := len(e.Child) - 1; i >= 0; i-- {
		switch tok := e.Child[i].(type) {
		case *etree.CharData:
			if strings.TrimSpace(tok.Data) == "" {
				e.RemoveChildAt(i)
			}
		case *etree.Comment, *etree.ProcInst, *etree.Directive:
			e.RemoveChildAt(i)
		case *etree.Element:
			compact(tok)
		}
	}
}

// stripIDs removes every id attribute and any attribute pointing at one
// of the removed ids (url(#x), #x hrefs).
func stripIDs(root *etree.Element) {
	ids := make(map[string]struct{})
	walk(root, func(e *etree.Element) {
		if id := e.SelectAttrValue("id", ""); id != "" {
			ids[id] = struct{}{}
		}
		e.RemoveAttr("id")
	})
	if len(ids) == 0 {
		return
	}
	walk(root, func(e *etree.Element) {
		var drop []string
		for _, attr := range e.Attr {
			if referencesID(attr.Value, ids) {
				drop = append(drop, attr.FullKey())
			}
		}
		for _, key := range drop {
			e.RemoveAttr(key)
		}
	})
}

func referencesID(value string, ids map[string]struct{}) bool {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "#") {
		_, ok := ids[v[1:]]
		return ok
	}
	for {
		start := strings.Index(v, "url(#")
		if start < 0 {
			return false
		}
		v = v[start+len("url(#"):]
		end := strings.IndexByte(v, ')')
		if end < 0 {
			return false
		}
		if _, ok := ids[strings.Trim(v[:end], `'" `)]; ok {
			return true
		}
		v = v[end:]
	}
}

func mergeClasses(root *etree.Element, extra []string) {
	classes := strings.Fields(root.SelectAttrValue("class", ""))
	seen := make(map[string]struct{}, len(classes)+len(extra))
	for _, c := range classes {
		seen[c] = struct{}{}
	}
	for _, c := range extra {
		for _, field := range strings.Fields(c) {
			if _, dup := seen[field]; dup {
				continue
			}
			seen[field] = struct{}{}
			classes = append(classes, field)
		}
	}
	if len(classes) > 0 {
		root.CreateAttr("class", strings.Join(classes, " "))
	}
}

// paint sets attr on the root and overrides descendants that paint with an
// explicit value other than "none".
func paint(root *etree.Element, attr, value string) {
	root.CreateAttr(attr, value)
	for _, child := range root.ChildElements() {
		walk(child, func(e *etree.Element) {
			if v := e.SelectAttrValue(attr, ""); v != "" && v != "none" {
				e.CreateAttr(attr, value)
			}
		})
	}
}

func walk(e *etree.Element, fn func(*etree.Element)) {
	fn(e)
	for _, child := range e.ChildElements() {
		walk(child, fn)
	}
}
