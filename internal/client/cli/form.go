package cli

import (
	"strconv"
	"strings"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/forms"
)

// promptCreate fills a create-mode buffer field by field. Empty input on an
// optional field skips it so the backend applies its own default; password
// fields are read without echo.
func (a *App) promptCreate(buf *forms.Buffer) error {
	for _, f := range buf.Schema().Fields {
		var raw string
		var err error

		if f.Name == "password" {
			raw, err = GetPassword(a.out)
		} else {
			raw, err = GetSimpleText(a.reader, fieldLabel(f), a.out)
		}
		if err != nil {
			return err
		}
		if raw == "" && !f.Required {
			continue
		}
		if err := buf.SetField(f.Name, raw); err != nil {
			return err
		}
	}
	return nil
}

// promptEdit re-prompts every field with the record's current value as the
// default, so pressing Enter everywhere round-trips the record unchanged.
func (a *App) promptEdit(buf *forms.Buffer) error {
	for _, f := range buf.Schema().Fields {
		current := ""
		if v, ok := buf.Value(f.Name); ok {
			current = displayValue(v)
		}
		raw, err := GetTextWithDefault(a.reader, fieldLabel(f), current, a.out)
		if err != nil {
			return err
		}
		if err := buf.SetField(f.Name, raw); err != nil {
			return err
		}
	}
	return nil
}

func fieldLabel(f forms.Field) string {
	label := f.Name
	if len(f.Options) > 0 {
		label += " (" + strings.Join(f.Options, " | ") + ")"
	}
	if !f.Required {
		label += " (optional)"
	}
	return label
}

func displayValue(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return n
	default:
		return ""
	}
}

// fieldString reads a text field out of a materialized payload.
func fieldString(payload map[string]any, name string) string {
	s, _ := payload[name].(string)
	return s
}
