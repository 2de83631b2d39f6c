package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-formmask/pkg/forms"
)

type scriptedDriver struct {
	answers []string
	asked   []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.answers) == 0 {
		return "", ErrAborted
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func TestRun_Format(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var out bytes.Buffer

	err := run(context.Background(), options{format: "01122023130p", preset: "datetime"}, nil, &out, logger, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "01/12/2023 1:30 P" {
		t.Fatalf("unexpected output %q", got)
	}

	out.Reset()
	err = run(context.Background(), options{format: "01x", preset: "datetime"}, nil, &out, logger, nil)
	if err == nil {
		t.Fatalf("expected rejection error")
	}
	if got := strings.TrimSpace(out.String()); got != "01" {
		t.Fatalf("expected partial value to be printed, got %q", got)
	}
}

func TestRun_BindFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "page.html")
	output := filepath.Join(dir, "out", "page.html")
	markup := `<form><input name="start_time" class="when"><input name="end_time" class="datetime_picker"></form>`
	if err := os.WriteFile(input, []byte(markup), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	logger, hook := test.NewNullLogger()
	opts := options{input: input, output: output, class: "when"}
	if err := run(context.Background(), opts, nil, &bytes.Buffer{}, logger, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := strings.Count(string(data), `data-mask-bound="true"`); got != 1 {
		t.Fatalf("expected only the custom class to be bound, got %d\n%s", got, data)
	}

	last := hook.LastEntry()
	if last == nil || last.Message != "output written" || last.Level != logrus.InfoLevel {
		t.Fatalf("unexpected last log entry %+v", last)
	}
}

func TestRun_BindStdinSanitized(t *testing.T) {
	logger, _ := test.NewNullLogger()
	stdin := strings.NewReader(`<input class="datetime_picker" onclick="x()"><script>alert(1)</script>`)
	var out bytes.Buffer

	if err := run(context.Background(), options{input: "-", sanitize: true}, stdin, &out, logger, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "onclick") || strings.Contains(got, "<script") {
		t.Fatalf("expected sanitized output, got %s", got)
	}
	if !strings.Contains(got, `data-mask="00/00/0000 #0:00 ZM"`) {
		t.Fatalf("expected mask attributes, got %s", got)
	}
}

func TestRun_PresetsDirectory(t *testing.T) {
	dir := t.TempDir()
	doc := "presets:\n  phone:\n    class: phone_input\n    pattern: \"(000) 000-0000\"\n"
	if err := os.WriteFile(filepath.Join(dir, "masks.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}

	logger, _ := test.NewNullLogger()
	var out bytes.Buffer
	opts := options{presets: dir, format: "5551234567", preset: "phone"}
	if err := run(context.Background(), opts, nil, &out, logger, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "(555) 123-4567" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRun_Interactive(t *testing.T) {
	logger, _ := test.NewNullLogger()
	driver := &scriptedDriver{answers: []string{
		"10/10/2020 3:00 PM", "10/10/2020 1:30 PM",
		"10102020130p", "10102020300p",
	}}
	var out bytes.Buffer

	if err := run(context.Background(), options{interactive: true}, nil, &out, logger, driver); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "End Date/Time: "+forms.MessageInvalidRange) {
		t.Fatalf("expected range error before retry, got %q", got)
	}
	if !strings.Contains(got, "start: 10/10/2020 1:30 PM") || !strings.Contains(got, "end:   10/10/2020 3:00 PM") {
		t.Fatalf("unexpected schedule output %q", got)
	}
	if len(driver.asked) != 4 {
		t.Fatalf("expected two rounds of prompts, got %v", driver.asked)
	}
}

func TestRun_InteractiveAborted(t *testing.T) {
	logger, _ := test.NewNullLogger()
	err := run(context.Background(), options{interactive: true}, nil, &bytes.Buffer{}, logger, &scriptedDriver{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRun_RequiresMode(t *testing.T) {
	logger, _ := test.NewNullLogger()
	if err := run(context.Background(), options{}, nil, &bytes.Buffer{}, logger, nil); err == nil {
		t.Fatalf("expected error without a mode")
	}
}
