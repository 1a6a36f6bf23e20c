package matching

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Škoda", "skoda"},
		{"Citroën", "citroen"},
		{"  Alfa   Romeo ", "alfa romeo"},
		{"BMW", "bmw"},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSameName(t *testing.T) {
	if !SameName("Škoda", "SKODA") {
		t.Error("expected accented and plain spellings to match")
	}
	if SameName("", "") {
		t.Error("empty strings must never match")
	}
	if SameName("Audi", "") {
		t.Error("empty string must never match a make")
	}
}
