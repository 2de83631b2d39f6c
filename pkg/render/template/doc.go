// Package template defines the template rendering contract used by the form
// renderer, with a pongo2-backed implementation under gotemplate.
package template
