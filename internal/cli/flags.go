package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/spf13/pflag"
)

// enumSliceValue is a repeatable, comma-separated flag whose items are
// checked by parse as they are set.
type enumSliceValue[T ~string] struct {
	values  []T
	parse   func(string) (T, error)
	typeStr string
}

var (
	_ pflag.Value      = (*enumSliceValue[domain.Severity])(nil)
	_ pflag.SliceValue = (*enumSliceValue[domain.Status])(nil)
)

func newSeveritySlice() *enumSliceValue[domain.Severity] {
	return &enumSliceValue[domain.Severity]{parse: domain.ParseSeverity, typeStr: "severities"}
}

func newStatusSlice() *enumSliceValue[domain.Status] {
	return &enumSliceValue[domain.Status]{parse: domain.ParseStatus, typeStr: "statuses"}
}

func (v *enumSliceValue[T]) Set(raw string) error {
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		parsed, err := v.parse(part)
		if err != nil {
			return err
		}
		v.values = append(v.values, parsed)
	}
	return nil
}

func (v *enumSliceValue[T]) String() string {
	return "[" + strings.Join(v.GetSlice(), ",") + "]"
}

func (v *enumSliceValue[T]) Type() string { return v.typeStr }

func (v *enumSliceValue[T]) Append(raw string) error { return v.Set(raw) }

func (v *enumSliceValue[T]) Replace(raw []string) error {
	v.values = nil
	return v.Set(strings.Join(raw, ","))
}

func (v *enumSliceValue[T]) GetSlice() []string {
	out := make([]string, len(v.values))
	for i, s := range v.values {
		out[i] = string(s)
	}
	return out
}

// parseDay reads a YYYY-MM-DD flag in the local zone. With endOfDay the
// last nanosecond of that day is returned, so the bound stays inclusive.
func parseDay(flag, raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", flag, raw)
	}
	if endOfDay {
		d = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &d, nil
}
