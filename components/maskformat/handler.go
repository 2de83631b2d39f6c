package maskformat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formmask/pkg/mask"
)

// FormatRoute is appended to the mount path for the format endpoint.
const FormatRoute = "/format"

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// PresetView is the JSON shape of a listed preset.
type PresetView struct {
	Name        string     `json:"name"`
	Class       string     `json:"class,omitempty"`
	Pattern     string     `json:"pattern"`
	Translation mask.Table `json:"translation,omitempty"`
}

// RejectionView reports a rejected character.
type RejectionView struct {
	Position int    `json:"position"`
	Char     string `json:"char"`
}

// FormatView is the JSON shape of a formatted value.
type FormatView struct {
	Preset   string          `json:"preset"`
	Value    string          `json:"value"`
	Raw      string          `json:"raw"`
	Complete bool            `json:"complete"`
	Valid    bool            `json:"valid"`
	Rejected []RejectionView `json:"rejected"`
}

type listResponse struct {
	Data []PresetView `json:"data"`
}

type formatResponse struct {
	Data FormatView `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
// Requests whose path ends in FormatRoute are formatted; every other path
// lists presets.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if strings.HasSuffix(strings.TrimRight(r.URL.Path, "/"), FormatRoute) {
			serveFormat(w, r, opts)
			return
		}
		serveList(w, r, opts)
	})
}

func serveList(w http.ResponseWriter, r *http.Request, opts Options) {
	presets := opts.Registry.Presets()
	views := make([]PresetView, 0, len(presets))
	for _, preset := range presets {
		views = append(views, PresetView{
			Name:        preset.Name,
			Class:       preset.Class,
			Pattern:     preset.Config.Pattern,
			Translation: preset.Config.Translations,
		})
	}
	writeJSON(w, r, http.StatusOK, listResponse{Data: views})
}

func serveFormat(w http.ResponseWriter, r *http.Request, opts Options) {
	query := r.URL.Query()
	name := strings.TrimSpace(query.Get(opts.PresetParam))
	if name == "" {
		name = opts.DefaultPreset
	}
	if name == "" {
		http.Error(w, "missing "+opts.PresetParam, http.StatusBadRequest)
		return
	}

	preset, compiled, ok := opts.Registry.Lookup(name)
	if !ok {
		opts.Metrics.observe("", OutcomeUnknown, 0)
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	value := query.Get(opts.ValueParam)
	if utf8.RuneCountInString(value) > opts.MaxValueLength {
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}

	res := compiled.Apply(value)
	view := FormatView{
		Preset:   preset.Name,
		Value:    res.Value,
		Raw:      res.Raw,
		Complete: res.Complete,
		Valid:    res.Complete && len(res.Rejected) == 0,
		Rejected: make([]RejectionView, 0, len(res.Rejected)),
	}
	for _, rej := range res.Rejected {
		view.Rejected = append(view.Rejected, RejectionView{Position: rej.Position, Char: string(rej.Char)})
	}

	outcome := OutcomeComplete
	switch {
	case len(res.Rejected) > 0:
		outcome = OutcomeRejected
	case !res.Complete:
		outcome = OutcomeIncomplete
	}
	opts.Metrics.observe(preset.Name, outcome, len(res.Rejected))

	writeJSON(w, r, http.StatusOK, formatResponse{Data: view})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
