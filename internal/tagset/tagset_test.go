package tagset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddManual(t *testing.T) {
	s := New()
	s.AddManual("flaky")
	s.AddManual("timing")
	s.AddManual("flaky") // duplicate ignored
	s.AddManual("   ")   // whitespace ignored
	s.AddManual("")      // empty ignored
	s.AddManual("  trimmed  ")

	want := []string{"flaky", "timing", "trimmed"}
	if diff := cmp.Diff(want, s.Manual()); diff != "" {
		t.Errorf("manual tags mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveManualLeavesAutoTag(t *testing.T) {
	s := New()
	s.SetAuto("BUCKET1")
	s.AddManual("flaky")

	s.RemoveManual("BUCKET1")
	if s.Auto() != "BUCKET1" {
		t.Errorf("auto tag removed by RemoveManual: auto = %q", s.Auto())
	}
	if diff := cmp.Diff([]string{"flaky"}, s.Manual()); diff != "" {
		t.Errorf("manual tags changed (-want +got):\n%s", diff)
	}
}

func TestSetAutoReplacesPrevious(t *testing.T) {
	s := New()
	s.SetAuto("BUCKET1")
	s.SetAuto("BUCKET2")

	if s.Auto() != "BUCKET2" {
		t.Errorf("auto = %q, want BUCKET2", s.Auto())
	}
	if got := s.Serialize(); got != "BUCKET2" {
		t.Errorf("Serialize() = %q, want %q", got, "BUCKET2")
	}
}

func TestSetAutoDemotesManualDuplicate(t *testing.T) {
	s := New()
	s.AddManual("BUCKET1")
	s.AddManual("flaky")
	s.SetAuto("BUCKET1")

	if diff := cmp.Diff([]string{"flaky"}, s.Manual()); diff != "" {
		t.Errorf("manual duplicate not removed (-want +got):\n%s", diff)
	}
	if got := s.Serialize(); got != "BUCKET1,flaky" {
		t.Errorf("Serialize() = %q, want %q", got, "BUCKET1,flaky")
	}
}

func TestSetAutoClear(t *testing.T) {
	s := New()
	s.SetAuto("BUCKET1")
	s.SetAuto("")
	if s.Auto() != "" {
		t.Errorf("auto = %q after clear, want empty", s.Auto())
	}
	if got := s.Serialize(); got != "" {
		t.Errorf("Serialize() = %q after clear, want empty", got)
	}
}

func TestAddManualIgnoresAutoName(t *testing.T) {
	s := New()
	s.SetAuto("BUCKET1")
	s.AddManual("BUCKET1")
	if got := s.Serialize(); got != "BUCKET1" {
		t.Errorf("Serialize() = %q, want single BUCKET1", got)
	}
}

// TestDisjointAfterOpSequence drives an arbitrary op sequence and checks
// the invariants: the two sets stay disjoint, serialization has no
// duplicates, and auto tags precede manual tags.
func TestDisjointAfterOpSequence(t *testing.T) {
	s := New()
	ops := []func(){
		func() { s.AddManual("a") },
		func() { s.SetAuto("B1") },
		func() { s.AddManual("B1") },
		func() { s.AddManual("b") },
		func() { s.SetAuto("B2") },
		func() { s.RemoveManual("B2") },
		func() { s.AddManual("B1") },
		func() { s.SetAuto("B1") },
		func() { s.RemoveManual("a") },
		func() { s.AddManual("c") },
	}
	for _, op := range ops {
		op()
		assertInvariants(t, s)
	}

	want := "B1,b,c"
	if got := s.Serialize(); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func assertInvariants(t *testing.T, s *Set) {
	t.Helper()
	seen := map[string]bool{}
	for _, tag := range s.All() {
		if seen[tag] {
			t.Fatalf("duplicate tag %q in %q", tag, s.Serialize())
		}
		seen[tag] = true
	}
	if auto := s.Auto(); auto != "" {
		fields := strings.Split(s.Serialize(), ",")
		if fields[0] != auto {
			t.Fatalf("auto tag %q not first in %q", auto, s.Serialize())
		}
	}
}
