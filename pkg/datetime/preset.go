// Package datetime holds the date/time mask preset bound to fields carrying
// the datetime_picker class, plus helpers that turn masked values back into
// time.Time and check start/end ordering.
package datetime

import (
	"sync"

	"github.com/goliatone/go-formmask/pkg/mask"
)

const (
	// MarkerClass selects the inputs that receive the mask.
	MarkerClass = "datetime_picker"
	// Pattern formats DD/MM/YYYY H:MM followed by an optional AM/PM marker.
	Pattern = "00/00/0000 #0:00 ZM"
	// PresetName identifies the preset in registries and config files.
	PresetName = "datetime"
)

// Translations returns the symbols Pattern adds to the default table.
func Translations() mask.Table {
	return mask.Table{
		'Z': mask.MustTranslation("[AP]", true),
		'M': mask.MustTranslation("[M]", true),
	}
}

// Config returns the preset configuration by value.
func Config() mask.Config {
	return mask.Config{
		Pattern:      Pattern,
		Translations: Translations(),
	}
}

var (
	compileOnce sync.Once
	compiled    *mask.Mask
)

// Mask returns the compiled preset. The preset is static so compilation
// cannot fail; it happens once and the result is shared.
func Mask() *mask.Mask {
	compileOnce.Do(func() {
		compiled = mask.MustCompile(Config())
	})
	return compiled
}
