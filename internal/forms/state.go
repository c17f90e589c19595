package forms

import "strings"

// State is one in-progress application record. Updates never mutate the
// receiver; Apply, Toggle and SetFile return a fresh copy so a rejected
// keystroke provably leaves the previous record untouched.
type State struct {
	values map[string]string
	sets   map[string][]string
	files  map[string]string
}

// NewState returns an empty application record.
func NewState() State {
	return State{
		values: map[string]string{},
		sets:   map[string][]string{},
		files:  map[string]string{},
	}
}

// Value returns the scalar value of a field, "" when unset.
func (s State) Value(name string) string { return s.values[name] }

// Selected returns the chosen values of a multi-select field.
func (s State) Selected(name string) []string { return s.sets[name] }

// FileName returns the label of the chosen upload for a file field.
func (s State) FileName(name string) string { return s.files[name] }

// Values returns a flat copy of all scalar fields.
func (s State) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s State) clone() State {
	n := State{
		values: make(map[string]string, len(s.values)),
		sets:   make(map[string][]string, len(s.sets)),
		files:  make(map[string]string, len(s.files)),
	}
	for k, v := range s.values {
		n.values[k] = v
	}
	for k, v := range s.sets {
		n.sets[k] = append([]string(nil), v...)
	}
	for k, v := range s.files {
		n.files[k] = v
	}
	return n
}

// Apply feeds one raw input value through the field formatter and returns
// the updated record. A malformed keystroke is rejected silently: the second
// return is false and the original record is returned unchanged.
//
// The empty string is a valid intermediate value for every field.
func (d *Definition) Apply(s State, name, raw string) (State, bool) {
	field, ok := d.FieldByName(name)
	if !ok {
		// Unknown fields pass through, matching the form's free inputs.
		n := s.clone()
		n.values[name] = raw
		return n, true
	}

	switch field.Kind {
	case Digits:
		if !allDigits(raw) || len(raw) > MaxDigitLen {
			return s, false
		}
	case Money:
		formatted, ok := FormatMoney(raw)
		if !ok {
			return s, false
		}
		raw = formatted
	case MultiSelect, File:
		// Multi-selects change via Toggle, file fields via SetFile.
		return s, false
	}

	n := s.clone()
	n.values[name] = raw
	return n, true
}

// Toggle flips membership of value in a multi-select field: added when
// absent, removed when present. Toggling twice restores the original set.
func (d *Definition) Toggle(s State, name, value string) State {
	n := s.clone()
	current := n.sets[name]
	for i, v := range current {
		if v == value {
			n.sets[name] = append(current[:i:i], current[i+1:]...)
			return n
		}
	}
	n.sets[name] = append(current, value)
	return n
}

// SetFile records the chosen upload label for a file field. An empty
// filename clears the selection.
func (d *Definition) SetFile(s State, name, filename string) State {
	n := s.clone()
	if filename == "" {
		delete(n.files, name)
		return n
	}
	n.files[name] = filename
	return n
}

// MissingRequired lists the required fields that are still empty, in section
// order. An empty result means the record is ready for submission.
func (d *Definition) MissingRequired(s State) []string {
	var missing []string
	for _, sec := range d.Sections {
		for _, f := range sec.Fields {
			if !f.Required {
				continue
			}
			switch f.Kind {
			case MultiSelect:
				if len(s.sets[f.Name]) == 0 {
					missing = append(missing, f.Name)
				}
			case File:
				if s.files[f.Name] == "" {
					missing = append(missing, f.Name)
				}
			default:
				if s.values[f.Name] == "" {
					missing = append(missing, f.Name)
				}
			}
		}
	}
	return missing
}

// FormatMoney normalizes a monetary input to a thousands-grouped digit
// string: existing commas are stripped, a non-digit remainder is rejected,
// and a comma is re-inserted every three digits from the right. Formatting
// an already-formatted value yields the same string.
func FormatMoney(raw string) (string, bool) {
	stripped := StripGrouping(raw)
	if !allDigits(stripped) {
		return "", false
	}
	return groupThousands(stripped), true
}

// StripGrouping removes the display separators from a monetary value,
// leaving the plain digit string sent over the wire.
func StripGrouping(v string) string {
	return strings.ReplaceAll(v, ",", "")
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
