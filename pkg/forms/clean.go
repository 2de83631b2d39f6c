package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formmask/pkg/datetime"
)

// Messages used by the event schedule form.
const (
	MessageRequired      = "This field is required."
	MessageStartRequired = "Please enter the start date and time"
	MessageInvalidRange  = "Please enter valid start and end times"
)

const maskTag = "mask"

// Cleaned holds the accepted values of a submission.
type Cleaned struct {
	// Text is the masked rendition of every accepted field.
	Text map[string]string
	// Times holds parsed values of datetime fields.
	Times map[string]time.Time
}

// EventSchedule is the cleaned start/end pair.
type EventSchedule struct {
	Start time.Time
	End   time.Time
}

func (f *Form) validator() *validator.Validate {
	f.validateOnce.Do(func() {
		v := validator.New()
		if err := v.RegisterValidation(maskTag, f.validMask); err != nil {
			panic(fmt.Errorf("forms: register %s validation: %w", maskTag, err))
		}
		f.validate = v
	})
	return f.validate
}

func (f *Form) validMask(fl validator.FieldLevel) bool {
	_, compiled, ok := f.registry.Lookup(fl.Param())
	if !ok {
		return false
	}
	return compiled.Valid(fl.Field().String())
}

func rulesFor(field Field) string {
	rules := []string{"omitempty"}
	if field.Required {
		rules[0] = "required"
	}
	if field.Preset != "" {
		rules = append(rules, maskTag+"="+field.Preset)
	}
	return strings.Join(rules, ",")
}

// Clean validates values against every field. Datetime fields are parsed;
// other masked fields are checked against their preset.
func (f *Form) Clean(values url.Values) (Cleaned, ErrorMapping) {
	cleaned := Cleaned{
		Text:  make(map[string]string),
		Times: make(map[string]time.Time),
	}
	var errs ErrorMapping
	v := f.validator()

	for _, field := range f.Fields {
		raw := strings.TrimSpace(values.Get(field.Name))
		if field.Preset == datetime.PresetName {
			raw = strings.ToUpper(raw)
		}
		if err := v.Var(raw, rulesFor(field)); err != nil {
			errs.add(field.Name, f.messageFor(field, err))
			continue
		}
		if raw == "" {
			continue
		}

		if field.Preset == datetime.PresetName {
			parsed, err := datetime.Parse(raw, f.parse...)
			if err != nil {
				errs.add(field.Name, invalidMessage(field))
				continue
			}
			cleaned.Times[field.Name] = parsed
			cleaned.Text[field.Name] = datetime.Mask().Format(raw)
			continue
		}

		if _, compiled, ok := f.registry.Lookup(field.Preset); ok {
			cleaned.Text[field.Name] = compiled.Format(raw)
			continue
		}
		cleaned.Text[field.Name] = raw
	}
	return cleaned, errs
}

func (f *Form) messageFor(field Field, err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "required" {
		return MessageRequired
	}
	return invalidMessage(field)
}

func invalidMessage(field Field) string {
	if field.InvalidMessage != "" {
		return field.InvalidMessage
	}
	return "Please enter a valid " + strings.ToLower(field.Label)
}

// CleanSchedule cleans the start/end pair. A valid end without a start, or an
// end before the start, is reported on the end field.
func (f *Form) CleanSchedule(values url.Values) (EventSchedule, ErrorMapping) {
	cleaned, errs := f.Clean(values)

	start, hasStart := cleaned.Times[FieldStartTime]
	end, hasEnd := cleaned.Times[FieldEndTime]
	if hasEnd && !hasStart {
		errs.add(FieldEndTime, MessageStartRequired)
		delete(cleaned.Times, FieldEndTime)
		hasEnd = false
	}
	if hasStart && hasEnd {
		if err := datetime.ValidateRange(start, end); errors.Is(err, datetime.ErrRangeInverted) {
			errs.add(FieldEndTime, MessageInvalidRange)
			hasEnd = false
		}
	}

	var schedule EventSchedule
	if hasStart {
		schedule.Start = start
	}
	if hasEnd {
		schedule.End = end
	}
	return schedule, errs
}
