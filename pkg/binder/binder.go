// Package binder installs input masks on document elements. A Binder starts
// unbound and moves to bound exactly once, when Ready is called with the
// parsed document; each matched element is processed independently.
package binder

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formmask/pkg/document"
	"github.com/goliatone/go-formmask/pkg/mask"
)

// Attributes written on bound elements. The browser runtime reads the same
// names.
const (
	AttrMask        = "data-mask"
	AttrTranslation = "data-mask-translation"
	AttrBound       = "data-mask-bound"
	AttrID          = "data-mask-id"
	AttrMaxLength   = "maxlength"
	AttrValue       = "value"
)

// ErrAlreadyBound is returned when Ready is called a second time.
var ErrAlreadyBound = errors.New("binder: already bound")

// State is the binder lifecycle.
type State int

const (
	StateUnbound State = iota
	StateBound
)

func (s State) String() string {
	switch s {
	case StateBound:
		return "bound"
	default:
		return "unbound"
	}
}

// Binder applies registry presets to matching elements.
type Binder struct {
	mu       sync.Mutex
	state    State
	registry *Registry
	logger   logrus.FieldLogger
	idFunc   func() string
	bindings []*Binding
}

// Report summarises one binding pass.
type Report struct {
	Bound   []*Binding
	Skipped int
}

// New constructs a Binder applying any provided options.
func New(options ...Option) *Binder {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = NewRegistry()
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}
	if cfg.idFunc == nil {
		cfg.idFunc = func() string { return uuid.NewString() }
	}
	return &Binder{
		registry: cfg.registry,
		logger:   cfg.logger,
		idFunc:   cfg.idFunc,
	}
}

// State reports whether Ready has run.
func (b *Binder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Registry exposes the preset registry.
func (b *Binder) Registry() *Registry { return b.registry }

// Ready is the initialization entry point invoked once the document is
// parsed. It binds every matching element and moves the binder to bound.
// There is no way back; later calls return ErrAlreadyBound.
func (b *Binder) Ready(doc document.Document) (Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateBound {
		return Report{}, ErrAlreadyBound
	}
	report := b.bind(doc)
	b.bindings = append(b.bindings, report.Bound...)
	b.state = StateBound

	b.logger.WithFields(logrus.Fields{
		"bound":   len(report.Bound),
		"skipped": report.Skipped,
	}).Debug("binder ready")
	return report, nil
}

// Bind applies presets to doc without touching the lifecycle state. Elements
// already carrying the resolved mask are skipped, so repeated passes over the
// same tree leave it unchanged.
func (b *Binder) Bind(doc document.Document) Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bind(doc)
}

// Bindings returns the bindings recorded by Ready.
func (b *Binder) Bindings() []*Binding {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Binding(nil), b.bindings...)
}

func (b *Binder) bind(doc document.Document) Report {
	var report Report
	if doc == nil {
		return report
	}
	for _, class := range b.registry.Classes() {
		for _, el := range doc.QueryClass(class) {
			preset, compiled, ok := b.registry.Resolve(el)
			if !ok {
				continue
			}
			if installed(el, compiled) {
				report.Skipped++
				continue
			}
			binding := b.install(el, preset, compiled)
			report.Bound = append(report.Bound, binding)
		}
	}
	return report
}

func installed(el document.Element, compiled *mask.Mask) bool {
	bound, _ := el.Attr(AttrBound)
	pattern, _ := el.Attr(AttrMask)
	return bound == "true" && pattern == compiled.Pattern()
}

func (b *Binder) install(el document.Element, preset Preset, compiled *mask.Mask) *Binding {
	el.SetAttr(AttrMask, compiled.Pattern())
	if overrides := compiled.Config().Translations; len(overrides) > 0 {
		if payload, err := json.Marshal(overrides); err == nil {
			el.SetAttr(AttrTranslation, string(payload))
		} else {
			b.logger.WithError(err).WithField("preset", preset.Name).Warn("encode mask translation")
		}
	}
	el.SetAttr(AttrPreset, preset.Name)
	el.SetAttr(AttrMaxLength, strconv.Itoa(compiled.Len()))

	id, ok := el.Attr(AttrID)
	if !ok || id == "" {
		id = b.idFunc()
		el.SetAttr(AttrID, id)
	}

	if value, ok := el.Attr(AttrValue); ok && value != "" {
		el.SetAttr(AttrValue, compiled.Format(value))
	}
	el.SetAttr(AttrBound, "true")

	name, _ := el.Attr("name")
	b.logger.WithFields(logrus.Fields{
		"preset":  preset.Name,
		"class":   preset.Class,
		"element": el.Tag(),
		"name":    name,
		"pattern": compiled.Pattern(),
	}).Debug("mask bound")

	return &Binding{ID: id, Preset: preset.Name, Element: el, Mask: compiled}
}
