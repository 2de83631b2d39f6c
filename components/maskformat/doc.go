// Package maskformat exposes the mask presets over net/http so browser code
// and other services can list presets and format values server side.
//
// The handler answers GET and HEAD requests on two routes below its mount
// path: the route itself lists presets, and "/format" applies a preset to the
// value query parameter.
package maskformat
