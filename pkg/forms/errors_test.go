package forms

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMapErrorPayload(t *testing.T) {
	form := New([]Field{
		DatetimeField(FieldStartTime, "Start Date/Time", true),
		DatetimeField("reminder.at", "Reminder", false),
	})

	payload := map[string][]string{
		"/body/start_time":      {"Start is taken"},
		"body.reminder.at":      {" Reminder too late ", "Reminder too late"},
		"$.data.reminder.at[0]": {"Reminder overlaps"},
		"__all__":               {"Calendar is locked"},
		"request/body/unknown":  {"Unknown failure"},
		"":                      {"Unscoped"},
		"end_time":              {"  "},
	}

	mapped := MapErrorPayload(form, payload)

	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })

	wantFields := map[string][]string{
		FieldStartTime: {"Start is taken"},
		"reminder.at":  {"Reminder overlaps", "Reminder too late"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields, sortStrings); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Calendar is locked", "Unknown failure", "Unscoped"}
	if diff := cmp.Diff(wantForm, mapped.Form, sortStrings); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := MergeFormErrors([]string{" First ", "Second"}, "Second", MessageInvalidRange, "  ")
	want := []string{"First", "Second", MessageInvalidRange}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
