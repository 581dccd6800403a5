package naming

import "testing"

func TestPascalCase(t *testing.T) {
	cases := map[string]string{
		"heart":          "Heart",
		"heart-filled":   "HeartFilled",
		"arrow_up":       "ArrowUp",
		"arrow-up-10":    "ArrowUp10",
		"HeartFilled":    "HeartFilled",
		"  building-2  ": "Building2",
		"":               "",
	}
	for in, want := range cases {
		if got := PascalCase(in); got != want {
			t.Errorf("PascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPascalCaseIdempotent(t *testing.T) {
	for _, name := range []string{"Heart", "ArrowUp10", "CircleUser", "heart-crack"} {
		once := PascalCase(name)
		if twice := PascalCase(once); twice != once {
			t.Errorf("PascalCase not idempotent for %q: %q then %q", name, once, twice)
		}
	}
}

func TestKebabCase(t *testing.T) {
	cases := map[string]string{
		"Heart":       "heart",
		"HeartFilled": "heart-filled",
		"ArrowUp10":   "arrow-up-10",
		"Building2":   "building-2",
		"heart-crack": "heart-crack",
	}
	for in, want := range cases {
		if got := KebabCase(in); got != want {
			t.Errorf("KebabCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKebabPascalRoundTrip(t *testing.T) {
	for _, name := range []string{"Heart", "HeartFilled", "ArrowUp10", "Building2", "MessageCircleQuestion"} {
		if got := PascalCase(KebabCase(name)); got != name {
			t.Errorf("round trip of %q gave %q", name, got)
		}
	}
}
