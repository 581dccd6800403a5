package naming

import (
	"strings"
	"unicode"
)

// PascalCase converts kebab, snake or space separated names to the
// component form used by the registry ("arrow-up-10" -> "ArrowUp10").
// Names already in PascalCase are returned unchanged.
func PascalCase(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upperNext := true
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// KebabCase converts a PascalCase name to lower-kebab form
// ("ArrowUp10" -> "arrow-up-10", "Building2" -> "building-2").
func KebabCase(name string) string {
	name = PascalCase(name)
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				b.WriteByte('-')
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				b.WriteByte('-')
			case unicode.IsDigit(r) && unicode.IsLetter(prev):
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
