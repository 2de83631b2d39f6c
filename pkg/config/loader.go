// Package config loads named mask presets from JSON or YAML files so
// deployments can add masks without recompiling.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formmask/pkg/binder"
	"github.com/goliatone/go-formmask/pkg/mask"
)

// DefaultPriority is used for presets that do not declare one.
const DefaultPriority = 50

// Entry is one preset definition with its registry priority.
type Entry struct {
	Preset   binder.Preset
	Priority int
	Source   string
}

// Store holds presets keyed by name.
type Store struct {
	entries map[string]Entry
}

type documentFile struct {
	Presets map[string]presetFile `json:"presets" yaml:"presets"`
}

type presetFile struct {
	Class       string                     `json:"class" yaml:"class"`
	Pattern     string                     `json:"pattern" yaml:"pattern"`
	Priority    *int                       `json:"priority" yaml:"priority"`
	Translation map[string]translationFile `json:"translation" yaml:"translation"`
}

type translationFile struct {
	Pattern   string `json:"pattern" yaml:"pattern"`
	Optional  bool   `json:"optional" yaml:"optional"`
	Recursive bool   `json:"recursive" yaml:"recursive"`
	Fallback  string `json:"fallback" yaml:"fallback"`
}

// LoadFS walks fsys and parses every JSON/YAML preset file. When fsys is nil
// or holds no preset files the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{entries: make(map[string]Entry)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPresetFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Presets {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("config: file %s defines a preset with an empty name", path)
			}
			if _, exists := store.entries[name]; exists {
				return fmt.Errorf("config: duplicate preset %q (file %s)", name, path)
			}
			parsed, err := normalisePreset(name, raw, path)
			if err != nil {
				return err
			}
			store.entries[name] = parsed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Entry returns the preset stored under name.
func (s *Store) Entry(name string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	entry, ok := s.entries[name]
	return entry, ok
}

// Entries returns all presets sorted by name.
func (s *Store) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Preset.Name < out[j].Preset.Name })
	return out
}

// Empty reports whether the store holds any presets.
func (s *Store) Empty() bool {
	return s == nil || len(s.entries) == 0
}

// Apply registers every preset on reg. Presets sharing a name with an
// existing registration replace it.
func (s *Store) Apply(reg *binder.Registry) error {
	if reg == nil {
		return fmt.Errorf("config: registry is nil")
	}
	for _, entry := range s.Entries() {
		if err := reg.Register(entry.Preset, entry.Priority, nil); err != nil {
			return fmt.Errorf("config: %s: %w", entry.Source, err)
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func normalisePreset(name string, raw presetFile, source string) (Entry, error) {
	if strings.TrimSpace(raw.Pattern) == "" {
		return Entry{}, fmt.Errorf("config: preset %q (file %s) has an empty pattern", name, source)
	}
	class := strings.TrimSpace(raw.Class)
	if class == "" {
		return Entry{}, fmt.Errorf("config: preset %q (file %s) has no class", name, source)
	}

	var table mask.Table
	if len(raw.Translation) > 0 {
		table = make(mask.Table, len(raw.Translation))
		for key, tr := range raw.Translation {
			symbols := []rune(key)
			if len(symbols) != 1 {
				return Entry{}, fmt.Errorf("config: preset %q (file %s) translation key %q must be a single character", name, source, key)
			}
			translation, err := mask.NewTranslation(tr.Pattern, tr.Optional)
			if err != nil {
				return Entry{}, fmt.Errorf("config: preset %q (file %s): %w", name, source, err)
			}
			translation.Recursive = tr.Recursive
			if fallback := []rune(tr.Fallback); len(fallback) > 0 {
				translation.Fallback = fallback[0]
			}
			table[symbols[0]] = translation
		}
	}

	cfg := mask.Config{Pattern: raw.Pattern, Translations: table}
	if _, err := mask.Compile(cfg); err != nil {
		return Entry{}, fmt.Errorf("config: preset %q (file %s): %w", name, source, err)
	}

	priority := DefaultPriority
	if raw.Priority != nil {
		priority = *raw.Priority
	}

	return Entry{
		Preset: binder.Preset{
			Name:   name,
			Class:  class,
			Config: cfg,
		},
		Priority: priority,
		Source:   source,
	}, nil
}

func isPresetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
