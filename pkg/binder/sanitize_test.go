package binder

import (
	"strings"
	"testing"
)

func TestSanitize_KeepsFormMarkup(t *testing.T) {
	in := `<form method="post"><label for="s">Start</label>` +
		`<input id="s" name="start_time" class="datetime_picker" data-mask-preset="datetime" onclick="steal()">` +
		`<script>alert(1)</script></form>`

	out := Sanitize(in)

	for _, want := range []string{`<form method="post">`, `for="s"`, `name="start_time"`, `class="datetime_picker"`, `data-mask-preset="datetime"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s to survive sanitising: %s", want, out)
		}
	}
	for _, banned := range []string{"onclick", "<script", "alert(1)"} {
		if strings.Contains(out, banned) {
			t.Fatalf("expected %s to be stripped: %s", banned, out)
		}
	}
}

func TestSanitize_Empty(t *testing.T) {
	if got := Sanitize("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
