package registration

import (
	"regexp"
	"strings"
	"testing"
)

var idPattern = regexp.MustCompile(`^EVT-[0-9A-Z]+-[0-9A-Z]{5}$`)

func TestNewIDFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		id := NewID()

		if !idPattern.MatchString(id) {
			t.Fatalf("id %q does not match expected pattern", id)
		}

		if id != strings.ToUpper(id) {
			t.Fatalf("id %q is not uppercase", id)
		}
	}
}

func TestNewIDDistinct(t *testing.T) {
	// probabilistic uniqueness only, but 50 draws sharing a millisecond and
	// a 5-char suffix colliding would point at a broken RNG
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		id := NewID()

		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}

		seen[id] = struct{}{}
	}
}
