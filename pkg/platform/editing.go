package platform

// TextAffinity describes which side of a position the caret prefers.
type TextAffinity int

const (
	// TextAffinityUpstream - the caret is placed at the end of the previous character.
	TextAffinityUpstream TextAffinity = iota
	// TextAffinityDownstream - the caret is placed at the start of the next character.
	TextAffinityDownstream
)

// TextRange represents a range of text.
type TextRange struct {
	Start int
	End   int
}

// IsEmpty returns true if the range has zero length.
func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if both start and end are non-negative.
func (r TextRange) IsValid() bool {
	return r.Start >= 0 && r.End >= 0
}

// IsNormalized returns true if start <= end.
func (r TextRange) IsNormalized() bool {
	return r.Start <= r.End
}

// TextRangeEmpty is an invalid/empty text range.
var TextRangeEmpty = TextRange{Start: -1, End: -1}

// TextSelection represents the current text selection.
type TextSelection struct {
	// BaseOffset is the position where the selection started.
	BaseOffset int
	// ExtentOffset is the position where the selection ended.
	ExtentOffset int
	// Affinity indicates which direction the caret prefers.
	Affinity TextAffinity
	// IsDirectional is true if the selection has a direction.
	IsDirectional bool
}

// Start returns the smaller of BaseOffset and ExtentOffset.
func (s TextSelection) Start() int {
	if s.BaseOffset < s.ExtentOffset {
		return s.BaseOffset
	}
	return s.ExtentOffset
}

// End returns the larger of BaseOffset and ExtentOffset.
func (s TextSelection) End() int {
	if s.BaseOffset > s.ExtentOffset {
		return s.BaseOffset
	}
	return s.ExtentOffset
}

// IsCollapsed returns true if the selection has no length (just a cursor).
func (s TextSelection) IsCollapsed() bool {
	return s.BaseOffset == s.ExtentOffset
}

// IsValid returns true if both offsets are non-negative.
func (s TextSelection) IsValid() bool {
	return s.BaseOffset >= 0 && s.ExtentOffset >= 0
}

// TextSelectionCollapsed creates a collapsed selection at the given offset.
func TextSelectionCollapsed(offset int) TextSelection {
	return TextSelection{
		BaseOffset:   offset,
		ExtentOffset: offset,
		Affinity:     TextAffinityDownstream,
	}
}

// TextEditingValue represents the current text editing state.
type TextEditingValue struct {
	// Text is the current text content.
	Text string
	// Selection is the current selection within the text.
	Selection TextSelection
	// ComposingRange is the range currently being composed by IME.
	ComposingRange TextRange
}

// TextEditingValueEmpty is the default empty editing value.
var TextEditingValueEmpty = TextEditingValue{
	Selection:      TextSelectionCollapsed(0),
	ComposingRange: TextRangeEmpty,
}

// IsComposing returns true if there is an active IME composition.
func (v TextEditingValue) IsComposing() bool {
	return v.ComposingRange.IsValid() && !v.ComposingRange.IsEmpty()
}

// KeyboardType specifies the type of keyboard to show.
type KeyboardType int

const (
	KeyboardTypeText KeyboardType = iota
	KeyboardTypeNumber
	KeyboardTypePhone
	KeyboardTypeEmail
	KeyboardTypeURL
	KeyboardTypePassword
	KeyboardTypeMultiline
)

// TextInputAction specifies the action button on the keyboard.
type TextInputAction int

const (
	TextInputActionNone TextInputAction = iota
	TextInputActionDone
	TextInputActionGo
	TextInputActionNext
	TextInputActionPrevious
	TextInputActionSearch
	TextInputActionSend
	TextInputActionNewline
)

// TextCapitalization specifies text capitalization behavior.
type TextCapitalization int

const (
	TextCapitalizationNone TextCapitalization = iota
	TextCapitalizationCharacters
	TextCapitalizationWords
	TextCapitalizationSentences
)
