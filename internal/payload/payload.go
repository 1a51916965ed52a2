// Package payload decodes the (config, data) pairs the host pushes to the
// widget.
//
// A Payload is immutable once loaded. Each successful load that changed
// the file contents produces a new Payload; the widget treats a new
// Payload as a new data set and restarts its live clocks.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"

	"github.com/daviddao/multivalue_viewer/internal/drill"
)

// ComparisonState distinguishes a missing comparison from a null one.
type ComparisonState int

const (
	ComparisonAbsent ComparisonState = iota
	ComparisonNull
	ComparisonNumber
)

// Comparison is a data point's comparison delta.
type Comparison struct {
	State ComparisonState
	Value float64

	// invalid holds the raw JSON of a value that was neither null nor numeric.
	invalid string
}

// Number returns a numeric comparison.
func Number(v float64) Comparison { return Comparison{State: ComparisonNumber, Value: v} }

// Null returns a null comparison.
func Null() Comparison { return Comparison{State: ComparisonNull} }

// UnmarshalJSON accepts null, numbers and numeric strings. Anything else
// decodes as null and is reported by Validate.
func (c *Comparison) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = Null()
		return nil
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		*c = Comparison{State: ComparisonNull, invalid: string(b)}
		return nil
	}
	*c = Number(v)
	return nil
}

// MarshalJSON writes null for absent and null comparisons.
func (c Comparison) MarshalJSON() ([]byte, error) {
	if c.State != ComparisonNumber {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// DataPoint is one labeled value supplied by the host.
type DataPoint struct {
	Name            string       `json:"name"`
	Label           string       `json:"label"`
	FormattedValue  string       `json:"formatted_value"`
	HTML            string       `json:"html,omitempty"`
	Comparison      Comparison   `json:"comparison"`
	ComparisonLabel string       `json:"comparison_label,omitempty"`
	Links           []drill.Link `json:"links,omitempty"`
}

// UnmarshalJSON also accepts "value_formatted" and "link" as spelled by
// some hosts.
func (d *DataPoint) UnmarshalJSON(b []byte) error {
	type plain DataPoint
	var aux struct {
		plain
		ValueFormatted string       `json:"value_formatted"`
		Link           []drill.Link `json:"link"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = DataPoint(aux.plain)
	if d.FormattedValue == "" {
		d.FormattedValue = aux.ValueFormatted
	}
	if d.Links == nil {
		d.Links = aux.Link
	}
	return nil
}

// Payload is an immutable (config, data) pair.
type Payload struct {
	Config map[string]any `json:"config"`
	Data   []DataPoint    `json:"data"`

	// Digest is the xxhash of the raw bytes the payload was decoded from.
	Digest uint64 `json:"-"`

	// Problems collects per-point validation errors. Points with problems
	// still render.
	Problems error `json:"-"`

	BuiltAt time.Time `json:"-"`
}

// Decode parses raw payload bytes.
func Decode(raw []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if p.Config == nil {
		p.Config = map[string]any{}
	}
	p.Digest = xxhash.Sum64(raw)
	p.Problems = Validate(p.Data)
	p.BuiltAt = time.Now()
	return &p, nil
}

// Load reads and decodes the payload file at path.
func Load(path string) (*Payload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload %s: %w", path, err)
	}
	return Decode(raw)
}

// Validate reports data points that cannot be addressed by name or carry
// an unusable comparison value.
func Validate(points []DataPoint) error {
	var result *multierror.Error
	seen := make(map[string]int, len(points))
	for i, dp := range points {
		if dp.Name == "" {
			result = multierror.Append(result, fmt.Errorf("data[%d]: missing name", i))
			continue
		}
		if j, dup := seen[dp.Name]; dup {
			result = multierror.Append(result, fmt.Errorf("data[%d]: duplicate name %q (first at data[%d])", i, dp.Name, j))
		} else {
			seen[dp.Name] = i
		}
		if dp.Comparison.invalid != "" {
			result = multierror.Append(result, fmt.Errorf("data[%d] %s: comparison %s is not numeric", i, dp.Name, dp.Comparison.invalid))
		}
	}
	return result.ErrorOrNil()
}

// Empty returns a payload with no data points.
func Empty() *Payload {
	return &Payload{Config: map[string]any{}, BuiltAt: time.Now()}
}
