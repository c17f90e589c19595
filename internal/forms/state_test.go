package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDigitFields(t *testing.T) {
	def := Agent()

	tests := []struct {
		name   string
		field  string
		input  string
		wantOK bool
	}{
		{name: "valid_digits", field: "bvn", input: "22123456789", wantOK: true},
		{name: "empty_is_valid", field: "bvn", input: "", wantOK: true},
		{name: "letters_rejected", field: "bvn", input: "2212345678a", wantOK: false},
		{name: "spaces_rejected", field: "phone", input: "0803 123", wantOK: false},
		{name: "too_long_rejected", field: "phone", input: "080312345678", wantOK: false},
		{name: "exactly_eleven", field: "idNumber", input: "12345678901", wantOK: true},
		{name: "punctuation_rejected", field: "idNumber", input: "1234-5678", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			state, ok := def.Apply(state, tt.field, "123")
			require.True(t, ok)

			next, ok := def.Apply(state, tt.field, tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.input, next.Value(tt.field))
			} else {
				// A rejected keystroke leaves the record untouched.
				assert.Equal(t, "123", next.Value(tt.field))
			}
		})
	}
}

func TestApplyMoneyFields(t *testing.T) {
	def := Agent()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "plain_digits_grouped", input: "1234567", want: "1,234,567", wantOK: true},
		{name: "already_formatted_idempotent", input: "1,234,567", want: "1,234,567", wantOK: true},
		{name: "three_digits_no_separator", input: "999", want: "999", wantOK: true},
		{name: "four_digits", input: "1000", want: "1,000", wantOK: true},
		{name: "empty_valid", input: "", want: "", wantOK: true},
		{name: "letters_rejected", input: "12a4", wantOK: false},
		{name: "decimal_rejected", input: "1234.56", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := def.Apply(NewState(), "monthlyTurnover", tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, next.Value("monthlyTurnover"))
			}
		})
	}
}

func TestFormatMoneyIdempotent(t *testing.T) {
	for _, input := range []string{"1", "12", "123", "1234", "12345", "1234567", "1000000000"} {
		once, ok := FormatMoney(input)
		require.True(t, ok, input)
		twice, ok := FormatMoney(once)
		require.True(t, ok, once)
		assert.Equal(t, once, twice)
	}
}

func TestStripGrouping(t *testing.T) {
	assert.Equal(t, "1234567", StripGrouping("1,234,567"))
	assert.Equal(t, "999", StripGrouping("999"))
	assert.Equal(t, "", StripGrouping(""))
}

func TestToggleMultiSelect(t *testing.T) {
	def := Agent()
	state := NewState()

	state = def.Toggle(state, "posFeatures", "Card Payments")
	state = def.Toggle(state, "posFeatures", "Bill Payments")
	assert.Equal(t, []string{"Card Payments", "Bill Payments"}, state.Selected("posFeatures"))

	// Toggling the same value twice restores the original set.
	state = def.Toggle(state, "posFeatures", "Cash Withdrawal")
	state = def.Toggle(state, "posFeatures", "Cash Withdrawal")
	assert.Equal(t, []string{"Card Payments", "Bill Payments"}, state.Selected("posFeatures"))

	state = def.Toggle(state, "posFeatures", "Card Payments")
	assert.Equal(t, []string{"Bill Payments"}, state.Selected("posFeatures"))
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	def := Agent()
	base, ok := def.Apply(NewState(), "fullName", "Ada Obi")
	require.True(t, ok)

	_, ok = def.Apply(base, "fullName", "Someone Else")
	require.True(t, ok)
	assert.Equal(t, "Ada Obi", base.Value("fullName"))

	withFeature := def.Toggle(base, "posFeatures", "Card Payments")
	assert.Empty(t, base.Selected("posFeatures"))
	assert.Len(t, withFeature.Selected("posFeatures"), 1)
}

func TestApplyPassThroughFields(t *testing.T) {
	def := Agent()

	state, ok := def.Apply(NewState(), "fullName", "Chinedu Okafor-Smith")
	require.True(t, ok)
	assert.Equal(t, "Chinedu Okafor-Smith", state.Value("fullName"))

	// Unknown fields pass through unchanged.
	state, ok = def.Apply(state, "someFreeformField", "anything at all")
	require.True(t, ok)
	assert.Equal(t, "anything at all", state.Value("someFreeformField"))
}

func TestMissingRequired(t *testing.T) {
	def := Agent()
	state := NewState()

	missing := def.MissingRequired(state)
	assert.Contains(t, missing, "fullName")
	assert.Contains(t, missing, "signature")
	assert.Contains(t, missing, "operatingPeriod")

	state = fillRequired(t, def, state)
	assert.Empty(t, def.MissingRequired(state))
}

// fillRequired populates every required field of a definition with a
// plausible value.
func fillRequired(t *testing.T, def *Definition, state State) State {
	t.Helper()
	for _, sec := range def.Sections {
		for _, f := range sec.Fields {
			if !f.Required {
				continue
			}
			switch f.Kind {
			case MultiSelect:
				state = def.Toggle(state, f.Name, f.Options[0])
			case File:
				state = def.SetFile(state, f.Name, f.Name+".png")
			case Digits:
				next, ok := def.Apply(state, f.Name, "08031234567")
				require.True(t, ok, f.Name)
				state = next
			case Money:
				next, ok := def.Apply(state, f.Name, "500000")
				require.True(t, ok, f.Name)
				state = next
			default:
				value := "test value"
				if len(f.Options) > 0 {
					value = f.Options[0]
				}
				next, ok := def.Apply(state, f.Name, value)
				require.True(t, ok, f.Name)
				state = next
			}
		}
	}
	return state
}

func TestSetFileClearsOnEmpty(t *testing.T) {
	def := Merchant()
	state := def.SetFile(NewState(), "signature", "sig.png")
	assert.Equal(t, "sig.png", state.FileName("signature"))

	state = def.SetFile(state, "signature", "")
	assert.Empty(t, state.FileName("signature"))
}
