package platform

import (
	"regexp"
	"testing"
)

func proposed(text string) TextEditingValue {
	return TextEditingValue{
		Text:      text,
		Selection: TextSelectionCollapsed(len(text)),
	}
}

func TestLengthLimitingFormatter(t *testing.T) {
	f := LengthLimitingFormatter{MaxLength: 3}
	got := f.FormatEditUpdate(proposed("ab"), proposed("abcdef"))
	if got.Text != "abc" {
		t.Errorf("expected abc, got %q", got.Text)
	}
	if got.Selection.BaseOffset != 3 {
		t.Errorf("expected selection clamped to 3, got %d", got.Selection.BaseOffset)
	}

	unchanged := f.FormatEditUpdate(proposed(""), proposed("ab"))
	if unchanged.Text != "ab" {
		t.Errorf("expected ab unchanged, got %q", unchanged.Text)
	}
}

func TestLengthLimitingFormatterRunes(t *testing.T) {
	f := LengthLimitingFormatter{MaxLength: 2}
	got := f.FormatEditUpdate(proposed(""), proposed("héllo"))
	if got.Text != "hé" {
		t.Errorf("expected rune-based truncation, got %q", got.Text)
	}
}

func TestAllowFormatter(t *testing.T) {
	f := AllowFormatter(regexp.MustCompile(`[0-9]`))
	got := f.FormatEditUpdate(proposed(""), proposed("a1b2c3"))
	if got.Text != "123" {
		t.Errorf("expected 123, got %q", got.Text)
	}
}

func TestDenyFormatter(t *testing.T) {
	f := DenyFormatter(regexp.MustCompile(`\s`))
	got := f.FormatEditUpdate(proposed(""), proposed("a b c"))
	if got.Text != "abc" {
		t.Errorf("expected abc, got %q", got.Text)
	}
}

func TestApplyFormattersChains(t *testing.T) {
	formatters := []TextInputFormatter{
		AllowFormatter(regexp.MustCompile(`[0-9]`)),
		LengthLimitingFormatter{MaxLength: 2},
	}
	got := ApplyFormatters(formatters, proposed(""), proposed("a1b2c3"))
	if got.Text != "12" {
		t.Errorf("expected 12, got %q", got.Text)
	}
}

func TestFormatterFunc(t *testing.T) {
	upper := FormatterFunc(func(oldValue, newValue TextEditingValue) TextEditingValue {
		return newValue
	})
	got := upper.FormatEditUpdate(proposed(""), proposed("x"))
	if got.Text != "x" {
		t.Errorf("expected passthrough, got %q", got.Text)
	}
}
