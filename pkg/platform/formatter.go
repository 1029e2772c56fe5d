package platform

import "regexp"

// TextInputFormatter validates and transforms edits before they are applied.
// FormatEditUpdate receives the value before the edit and the proposed value,
// and returns the value to actually apply.
type TextInputFormatter interface {
	FormatEditUpdate(oldValue, newValue TextEditingValue) TextEditingValue
}

// FormatterFunc adapts a function to the TextInputFormatter interface.
type FormatterFunc func(oldValue, newValue TextEditingValue) TextEditingValue

// FormatEditUpdate calls f.
func (f FormatterFunc) FormatEditUpdate(oldValue, newValue TextEditingValue) TextEditingValue {
	return f(oldValue, newValue)
}

// LengthLimitingFormatter truncates edits that exceed MaxLength runes.
// A MaxLength of zero or less disables the limit.
type LengthLimitingFormatter struct {
	MaxLength int
}

// FormatEditUpdate truncates the proposed text to MaxLength runes and clamps
// the selection to the truncated length.
func (f LengthLimitingFormatter) FormatEditUpdate(oldValue, newValue TextEditingValue) TextEditingValue {
	if f.MaxLength <= 0 {
		return newValue
	}
	runes := []rune(newValue.Text)
	if len(runes) <= f.MaxLength {
		return newValue
	}
	truncated := string(runes[:f.MaxLength])
	result := newValue
	result.Text = truncated
	if result.Selection.BaseOffset > len(truncated) {
		result.Selection.BaseOffset = len(truncated)
	}
	if result.Selection.ExtentOffset > len(truncated) {
		result.Selection.ExtentOffset = len(truncated)
	}
	return result
}

// FilteringFormatter removes disallowed characters from edits.
// With Allow set, only matches of Pattern are kept. Without Allow, matches
// of Pattern are removed.
type FilteringFormatter struct {
	Pattern     *regexp.Regexp
	Allow       bool
	Replacement string
}

// AllowFormatter creates a formatter that keeps only characters matching pattern.
func AllowFormatter(pattern *regexp.Regexp) FilteringFormatter {
	return FilteringFormatter{Pattern: pattern, Allow: true}
}

// DenyFormatter creates a formatter that strips characters matching pattern.
func DenyFormatter(pattern *regexp.Regexp) FilteringFormatter {
	return FilteringFormatter{Pattern: pattern}
}

// FormatEditUpdate applies the filter to the proposed text. If filtering
// changed the text, the selection collapses to the end of the result.
func (f FilteringFormatter) FormatEditUpdate(oldValue, newValue TextEditingValue) TextEditingValue {
	if f.Pattern == nil {
		return newValue
	}

	var filtered string
	if f.Allow {
		matches := f.Pattern.FindAllString(newValue.Text, -1)
		for _, m := range matches {
			filtered += m
		}
	} else {
		filtered = f.Pattern.ReplaceAllString(newValue.Text, f.Replacement)
	}

	if filtered == newValue.Text {
		return newValue
	}
	result := newValue
	result.Text = filtered
	result.Selection = TextSelectionCollapsed(len(filtered))
	return result
}

// ApplyFormatters runs each formatter in order against the proposed value.
func ApplyFormatters(formatters []TextInputFormatter, oldValue, newValue TextEditingValue) TextEditingValue {
	value := newValue
	for _, formatter := range formatters {
		if formatter != nil {
			value = formatter.FormatEditUpdate(oldValue, value)
		}
	}
	return value
}
