package binder

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formmask/pkg/datetime"
	"github.com/goliatone/go-formmask/pkg/document"
	"github.com/goliatone/go-formmask/pkg/mask"
)

// AttrPreset lets markup pick a preset explicitly, bypassing matchers.
const AttrPreset = "data-mask-preset"

// Preset is a named mask configuration attached to elements carrying Class.
type Preset struct {
	Name   string
	Class  string
	Config mask.Config
}

// Matcher decides whether a preset should handle the supplied element.
type Matcher func(el document.Element) bool

type rule struct {
	preset   Preset
	compiled *mask.Mask
	priority int
	match    Matcher
	order    int
}

// Registry selects mask presets for elements based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a preset.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
	seq   int
}

// NewRegistry constructs a registry with the datetime preset registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without built-in presets.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register compiles preset and adds it with the provided matcher. When
// matcher is nil the preset matches elements carrying preset.Class. A later
// registration under the same name replaces the earlier one.
func (r *Registry) Register(preset Preset, priority int, matcher Matcher) error {
	if r == nil {
		return fmt.Errorf("binder: registry is nil")
	}
	preset.Name = strings.TrimSpace(preset.Name)
	preset.Class = strings.TrimSpace(preset.Class)
	if preset.Name == "" {
		return fmt.Errorf("binder: preset name is required")
	}
	compiled, err := mask.Compile(preset.Config)
	if err != nil {
		return fmt.Errorf("binder: preset %q: %w", preset.Name, err)
	}
	if matcher == nil {
		if preset.Class == "" {
			return fmt.Errorf("binder: preset %q needs a class or matcher", preset.Name)
		}
		class := preset.Class
		matcher = func(el document.Element) bool {
			return el.HasClass(class)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.rules[:0]
	for _, existing := range r.rules {
		if existing.preset.Name != preset.Name {
			kept = append(kept, existing)
		}
	}
	r.rules = append(kept, rule{
		preset:   preset,
		compiled: compiled,
		priority: priority,
		match:    matcher,
		order:    r.seq,
	})
	r.seq++
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(preset Preset, priority int, matcher Matcher) {
	if err := r.Register(preset, priority, matcher); err != nil {
		panic(err)
	}
}

// Lookup returns a preset and its compiled mask by name.
func (r *Registry) Lookup(name string) (Preset, *mask.Mask, bool) {
	if r == nil {
		return Preset{}, nil, false
	}
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.rules {
		if entry.preset.Name == name {
			return entry.preset, entry.compiled, true
		}
	}
	return Preset{}, nil, false
}

// Presets returns registered presets sorted by name.
func (r *Registry) Presets() []Preset {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]Preset, 0, len(r.rules))
	for _, entry := range r.rules {
		out = append(out, entry.preset)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Classes returns the distinct selector classes of all presets.
func (r *Registry) Classes() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(r.rules))
	var out []string
	for _, entry := range r.sorted() {
		class := entry.preset.Class
		if class == "" {
			continue
		}
		if _, ok := seen[class]; ok {
			continue
		}
		seen[class] = struct{}{}
		out = append(out, class)
	}
	return out
}

// Resolve returns the preset for el. The data-mask-preset attribute is
// honoured before matcher evaluation.
func (r *Registry) Resolve(el document.Element) (Preset, *mask.Mask, bool) {
	if r == nil || el == nil {
		return Preset{}, nil, false
	}
	if explicit, ok := el.Attr(AttrPreset); ok && strings.TrimSpace(explicit) != "" {
		if preset, compiled, found := r.Lookup(explicit); found {
			return preset, compiled, true
		}
	}

	r.mu.RLock()
	rules := r.sorted()
	r.mu.RUnlock()
	for _, entry := range rules {
		if entry.match(el) {
			return entry.preset, entry.compiled, true
		}
	}
	return Preset{}, nil, false
}

// sorted must be called with r.mu held.
func (r *Registry) sorted() []rule {
	rules := append([]rule(nil), r.rules...)
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	return rules
}

func (r *Registry) registerBuiltins() {
	r.MustRegister(Preset{
		Name:   datetime.PresetName,
		Class:  datetime.MarkerClass,
		Config: datetime.Config(),
	}, 100, nil)
}
