package datetime

import "testing"

func TestMask_CompiledOnce(t *testing.T) {
	first := Mask()
	if first != Mask() {
		t.Fatalf("expected the compiled preset to be shared")
	}
	if first.Pattern() != Pattern {
		t.Fatalf("expected pattern %q, got %q", Pattern, first.Pattern())
	}
	if got := first.Format("011220231230PM"); got != "01/12/2023 12:30 PM" {
		t.Fatalf("unexpected format %q", got)
	}
}
