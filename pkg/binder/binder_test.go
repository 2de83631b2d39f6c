package binder

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-formmask/pkg/datetime"
	"github.com/goliatone/go-formmask/pkg/document"
)

func parse(t *testing.T, markup string) *document.HTML {
	t.Helper()
	doc, err := document.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "mask-" + strconv.Itoa(n)
	}
}

func TestReady_NoMatchesIsNoop(t *testing.T) {
	markup := `<form><input name="title" class="form-control"></form>`
	doc := parse(t, markup)
	before := doc.String()

	b := New()
	report, err := b.Ready(doc)
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	if len(report.Bound) != 0 || report.Skipped != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
	if doc.String() != before {
		t.Fatalf("document changed:\nbefore %s\nafter  %s", before, doc.String())
	}
	if b.State() != StateBound {
		t.Fatalf("expected bound state, got %s", b.State())
	}
}

func TestReady_InstallsMaskOnEveryMarker(t *testing.T) {
	doc := parse(t, `<form>
<input name="start_time" class="col-md-6 col-sm-12 datetime_picker">
<input name="title">
<input name="end_time" class="datetime_picker">
</form>`)

	b := New(WithIDFunc(sequentialIDs()))
	report, err := b.Ready(doc)
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	if len(report.Bound) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(report.Bound))
	}

	for idx, binding := range report.Bound {
		if binding.Preset != datetime.PresetName {
			t.Fatalf("binding %d: unexpected preset %q", idx, binding.Preset)
		}
		if got, _ := binding.Element.Attr(AttrMask); got != datetime.Pattern {
			t.Fatalf("binding %d: expected pattern %q, got %q", idx, datetime.Pattern, got)
		}
		if got, _ := binding.Element.Attr(AttrTranslation); got != `{"M":{"pattern":"[M]","optional":true},"Z":{"pattern":"[AP]","optional":true}}` {
			t.Fatalf("binding %d: unexpected translation %s", idx, got)
		}
		if got, _ := binding.Element.Attr(AttrMaxLength); got != strconv.Itoa(len(datetime.Pattern)) {
			t.Fatalf("binding %d: unexpected maxlength %q", idx, got)
		}
		if binding.ID != "mask-"+strconv.Itoa(idx+1) {
			t.Fatalf("binding %d: unexpected id %q", idx, binding.ID)
		}
	}
	if len(b.Bindings()) != 2 {
		t.Fatalf("expected bindings recorded, got %d", len(b.Bindings()))
	}
}

func TestReady_OnlyOnce(t *testing.T) {
	doc := parse(t, `<input class="datetime_picker">`)
	b := New()
	if _, err := b.Ready(doc); err != nil {
		t.Fatalf("first ready: %v", err)
	}
	if _, err := b.Ready(doc); !errors.Is(err, ErrAlreadyBound) {
		t.Fatalf("expected ErrAlreadyBound, got %v", err)
	}
}

func TestBind_Idempotent(t *testing.T) {
	doc := parse(t, `<input class="datetime_picker" value="01122023130P">`)
	b := New()

	first := b.Bind(doc)
	once := doc.String()
	second := b.Bind(doc)

	if len(first.Bound) != 1 {
		t.Fatalf("expected first pass to bind, got %+v", first)
	}
	if len(second.Bound) != 0 || second.Skipped != 1 {
		t.Fatalf("expected second pass to skip, got %+v", second)
	}
	if doc.String() != once {
		t.Fatalf("second pass changed the document:\n%s\n%s", once, doc.String())
	}
	if strings.Count(once, AttrMask+"=") != 1 {
		t.Fatalf("expected a single mask attribute: %s", once)
	}
	if !strings.Contains(once, `value="01/12/2023 1:30 P"`) {
		t.Fatalf("expected existing value reformatted: %s", once)
	}
}

func TestBinding_TypeSimulatesKeystrokes(t *testing.T) {
	doc := parse(t, `<input class="datetime_picker">`)
	report, err := New().Ready(doc)
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	binding := report.Bound[0]

	if rejected := binding.Type("01122023130P"); rejected != 0 {
		t.Fatalf("expected no rejected keys, got %d", rejected)
	}
	if got := binding.Value(); got != "01/12/2023 1:30 P" {
		t.Fatalf("unexpected value %q", got)
	}
	if !binding.Valid() {
		t.Fatalf("expected value to be valid")
	}

	if binding.Press('Q') {
		t.Fatalf("expected Q to be rejected")
	}
	if !binding.Press('M') || binding.Value() != "01/12/2023 1:30 PM" {
		t.Fatalf("expected M accepted, got %q", binding.Value())
	}

	binding.Backspace()
	binding.Backspace()
	if got := binding.Value(); got != "01/12/2023 1:30" {
		t.Fatalf("unexpected value after backspace %q", got)
	}
}

func TestBinding_DigitsOnlyIsValid(t *testing.T) {
	doc := parse(t, `<input class="datetime_picker">`)
	report, err := New().Ready(doc)
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	binding := report.Bound[0]

	if rejected := binding.Type("0112202309a45"); rejected != 1 {
		t.Fatalf("expected the letter to be rejected, got %d", rejected)
	}
	if got := binding.Value(); got != "01/12/2023 09:45" {
		t.Fatalf("unexpected value %q", got)
	}
	if !binding.Valid() {
		t.Fatalf("expected digits-only value to be valid")
	}
}

func TestReady_LogsBoundElements(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	doc := parse(t, `<input name="start_time" class="datetime_picker">`)
	if _, err := New(WithLogger(logger)).Ready(doc); err != nil {
		t.Fatalf("ready: %v", err)
	}

	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "mask bound" {
			found = true
			if entry.Data["name"] != "start_time" || entry.Data["preset"] != datetime.PresetName {
				t.Fatalf("unexpected log fields: %v", entry.Data)
			}
		}
	}
	if !found {
		t.Fatalf("expected a mask bound log entry")
	}
}
