package binder

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// Sanitize strips markup that is not part of a plain form before binding.
// Scripts, event handlers and styles are removed; inputs, labels and data-*
// attributes survive so bound masks render intact.
func Sanitize(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(FormPolicy().Sanitize(trimmed))
}

// FormPolicy returns the shared bluemonday policy used by Sanitize.
func FormPolicy() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("form", "fieldset", "legend", "label", "input", "textarea", "select", "option", "button", "small")
		policy.AllowAttrs("class", "id").Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs(
			"name", "type", "value", "placeholder", "maxlength", "autocomplete",
			"required", "disabled", "readonly", "aria-describedby", "aria-invalid",
		).OnElements("input", "textarea", "select", "button")
		policy.AllowAttrs("value", "selected").OnElements("option")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("action", "method", "novalidate").OnElements("form")

		formPolicy = policy
	})
	return formPolicy
}
