package images

import "testing"

const origin = "https://ohanatienda.ddns.net"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"absolute http", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"absolute https", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"protocol relative", "//cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"server path", "uploads/a.jpg", origin + "/uploads/a.jpg"},
		{"leading slash", "/uploads/a.jpg", origin + "/uploads/a.jpg"},
		{"double slash path", "///uploads/a.jpg", "https:///uploads/a.jpg"},
		{"surrounding spaces", "  /uploads/a.jpg  ", origin + "/uploads/a.jpg"},
	}

	r := NewResolver(origin)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// Уже абсолютный URL при повторной нормализации не меняется.
func TestNormalizeIdempotent(t *testing.T) {
	r := NewResolver(origin)
	for _, in := range []string{"a.jpg", "/b/c.png", "//cdn.example.com/d.gif", "https://x.y/z.jpg"} {
		once := r.Normalize(in)
		if twice := r.Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeShortCircuitsKnownFailed(t *testing.T) {
	r := NewResolver(origin)
	u := "https://cdn.example.com/broken.jpg"

	if got := r.Normalize(u); got != u {
		t.Fatalf("before MarkFailed: got %q", got)
	}

	r.MarkFailed(u)
	if got := r.Normalize(u); got != "" {
		t.Fatalf("after MarkFailed: got %q, want empty", got)
	}

	r.Reset()
	if got := r.Normalize(u); got != u {
		t.Fatalf("after Reset: got %q, want %q", got, u)
	}
}

func TestMarkMutualExclusivity(t *testing.T) {
	r := NewResolver(origin)
	u := "https://cdn.example.com/a.jpg"

	r.MarkFailed(u)
	r.MarkValid(u)
	if r.IsFailed(u) {
		t.Fatal("url still failed after MarkValid")
	}
	if !r.IsValid(u) {
		t.Fatal("url not valid after MarkValid")
	}

	r.MarkFailed(u)
	if r.IsValid(u) {
		t.Fatal("url still valid after MarkFailed")
	}
	if !r.IsFailed(u) {
		t.Fatal("url not failed after MarkFailed")
	}
}

func TestResetClearsBothSets(t *testing.T) {
	r := NewResolver(origin)
	r.MarkValid("https://a/1.jpg")
	r.MarkFailed("https://a/2.jpg")

	r.Reset()
	if r.IsValid("https://a/1.jpg") || r.IsFailed("https://a/2.jpg") {
		t.Fatal("Reset left entries behind")
	}
}
