// Package vizconfig gives typed access to the flat host configuration,
// including per-data-point keys of the form "<field>_<name>".
package vizconfig

import (
	"strings"

	"github.com/spf13/cast"
)

// Field is a per-data-point configuration field.
type Field string

const (
	FieldStyle                    Field = "style"
	FieldTitleOverride            Field = "title_override"
	FieldTitlePlacement           Field = "title_placement"
	FieldShowTitle                Field = "show_title"
	FieldComparisonLabelPlacement Field = "comparison_label_placement"
	FieldComparisonStyle          Field = "comparison_style"
	FieldComparisonLabel          Field = "comparison_label"
	FieldComparisonShowLabel      Field = "comparison_show_label"
)

// Global keys.
const (
	KeyOrientation  = "orientation"
	KeyFontSizeMain = "font_size_main"
	KeyGroupingFont = "grouping_font"
	KeyDividers     = "dividers"
)

var fields = []Field{
	FieldStyle,
	FieldTitleOverride,
	FieldTitlePlacement,
	FieldShowTitle,
	FieldComparisonLabelPlacement,
	FieldComparisonStyle,
	FieldComparisonLabel,
	FieldComparisonShowLabel,
}

// Fields lists every per-data-point field.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Key returns the flat config key for field f of data point name.
func Key(name string, f Field) string {
	return string(f) + "_" + name
}

// Config wraps the host configuration map. The zero value is empty.
type Config struct {
	values map[string]any
}

// New wraps m. m is not copied and must not be mutated afterwards.
func New(m map[string]any) Config {
	return Config{values: m}
}

// Raw returns the value stored under key.
func (c Config) Raw(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// For returns the value of field f for data point name.
func (c Config) For(name string, f Field) (any, bool) {
	return c.Raw(Key(name, f))
}

// StringFor returns field f for name as a string, "" when unset.
func (c Config) StringFor(name string, f Field) string {
	v, ok := c.For(name, f)
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// BoolFor returns field f for name as a bool, def when unset or not
// coercible.
func (c Config) BoolFor(name string, f Field, def bool) bool {
	v, ok := c.For(name, f)
	if !ok || v == nil {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// PointFields returns the fields set for name.
func (c Config) PointFields(name string) map[Field]any {
	out := make(map[Field]any)
	for _, f := range fields {
		if v, ok := c.For(name, f); ok {
			out[f] = v
		}
	}
	return out
}

// Orientation returns the configured orientation, "" when unset.
func (c Config) Orientation() string {
	v, ok := c.Raw(KeyOrientation)
	if !ok || v == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(cast.ToString(v)))
}

// FontSizeMain returns the explicit font size in pixels. ok is false when
// the key is unset, empty or not a number. A trailing "px" is accepted.
func (c Config) FontSizeMain() (px float64, ok bool) {
	v, found := c.Raw(KeyFontSizeMain)
	if !found || v == nil {
		return 0, false
	}
	if s, isString := v.(string); isString {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
		if s == "" {
			return 0, false
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// GroupingFont returns the configured font family, "" when unset.
func (c Config) GroupingFont() string {
	v, ok := c.Raw(KeyGroupingFont)
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// Dividers reports whether dividers between groups are requested.
func (c Config) Dividers() bool {
	v, ok := c.Raw(KeyDividers)
	if !ok || v == nil {
		return false
	}
	return cast.ToBool(v)
}
