package batch

import "testing"

func TestOutputName(t *testing.T) {
	cases := []struct {
		name     string
		original string
		index    int
		rename   bool
		base     string
		want     string
	}{
		{"rename keeps numeric suffix", "photo42.png", 0, true, "cat", "cat-42.jpg"},
		{"rename without digits uses index", "photo.png", 0, true, "cat", "cat-1.jpg"},
		{"rename with empty base falls through", "photo.png", 2, true, "", "photo-3.jpg"},
		{"numeric suffix kept with single hyphen", "img-7.png", 3, false, "", "img-7.jpg"},
		{"numeric suffix gains hyphen", "img7.png", 3, false, "", "img-7.jpg"},
		{"no digits appends index", "photo.png", 3, false, "", "photo-4.jpg"},
		{"extension always jpg", "scan003.tiff", 0, false, "", "scan-003.jpg"},
		{"digits not at end are ignored", "img7x.png", 0, false, "", "img7x-1.jpg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := OutputName(tc.original, tc.index, tc.rename, tc.base)
			if got != tc.want {
				t.Fatalf("OutputName(%q,%d,%v,%q) = %q, want %q",
					tc.original, tc.index, tc.rename, tc.base, got, tc.want)
			}
			// Same inputs, same output.
			if again := OutputName(tc.original, tc.index, tc.rename, tc.base); again != got {
				t.Fatalf("naming not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Zdjęcie Żółte", "zdjecie-zolte"},
		{"Łódź", "lodz"},
		{"Café au  lait", "cafe-au-lait"},
		{"Hello World", "hello-world"},
		{"already-clean.name", "already-clean.name"},
		{"weird***chars!!!", "weirdchars"},
		{"a-!-b", "a-b"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{"Zdjęcie Żółte", "a-!-b", "  spaced   out  ", "Señor García", "x"}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestBaseFromFirst(t *testing.T) {
	if got := BaseFromFirst("Żółty Kot 01.JPG"); got != "zolty-kot-01" {
		t.Fatalf("BaseFromFirst = %q", got)
	}
}
