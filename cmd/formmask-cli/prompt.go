package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formmask/pkg/datetime"
	"github.com/goliatone/go-formmask/pkg/forms"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("formmask-cli: prompt aborted")

// InputConfig configures a text prompt.
type InputConfig struct {
	Message   string
	Help      string
	Default   string
	Validator func(string) error
}

// PromptDriver abstracts the terminal so the interactive flow can be tested
// without one.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
}

type surveyDriver struct{}

func (surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			value, _ := ans.(string)
			return cfg.Validator(value)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// maskValidator rejects answers the datetime mask cannot fully accept.
func maskValidator(field forms.Field) func(string) error {
	compiled := datetime.Mask()
	return func(value string) error {
		value = strings.ToUpper(strings.TrimSpace(value))
		if value == "" {
			if field.Required {
				return errors.New(forms.MessageRequired)
			}
			return nil
		}
		if !compiled.Valid(value) {
			return errors.New(field.InvalidMessage)
		}
		return nil
	}
}

// promptSchedule asks for each field of form and cleans the answers as a
// submitted schedule. Answers are re-prompted until the schedule is valid.
func promptSchedule(ctx context.Context, driver PromptDriver, form *forms.Form, out io.Writer, attempts int) (forms.EventSchedule, error) {
	if attempts <= 0 {
		attempts = 3
	}
	for attempt := 0; attempt < attempts; attempt++ {
		values := url.Values{}
		for _, field := range form.Fields {
			answer, err := driver.Input(ctx, InputConfig{
				Message:   field.Label,
				Help:      field.HelpText,
				Validator: maskValidator(field),
			})
			if err != nil {
				return forms.EventSchedule{}, err
			}
			values.Set(field.Name, answer)
		}

		schedule, errs := form.CleanSchedule(values)
		if errs.Empty() {
			return schedule, nil
		}
		for _, field := range form.Fields {
			for _, message := range errs.Field(field.Name) {
				fmt.Fprintf(out, "%s: %s\n", field.Label, message)
			}
		}
		for _, message := range errs.Form {
			fmt.Fprintln(out, message)
		}
	}
	return forms.EventSchedule{}, fmt.Errorf("formmask-cli: no valid schedule after %d attempts", attempts)
}
