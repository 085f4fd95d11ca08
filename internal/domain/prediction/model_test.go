package prediction

import "testing"

func TestStrength(t *testing.T) {
	t.Parallel()

	if got := Strength(2, 0); got != nil {
		t.Fatalf("played=0 must be unavailable, got %v", *got)
	}

	got := Strength(2, 4)
	if got == nil || *got != 50.0 {
		t.Fatalf("2 of 4 wins: want 50.0, got %v", got)
	}

	got = Strength(2, 3)
	if got == nil || *got != 66.7 {
		t.Fatalf("2 of 3 wins rounds to one decimal: got %v", got)
	}

	got = Strength(0, 5)
	if got == nil || *got != 0.0 {
		t.Fatalf("zero wins with matches played is numeric zero, got %v", got)
	}
}

func TestTruncateForm(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":         "",
		"WDL":      "WDL",
		"WWDLW":    "WWDLW",
		"LLWWDLW":  "WWDLW",
		"WWWWWWWW": "WWWWW",
	}

	for in, want := range cases {
		if got := TruncateForm(in); got != want {
			t.Fatalf("TruncateForm(%q) = %q, want %q", in, got, want)
		}
	}
}
