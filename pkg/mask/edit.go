package mask

import "unicode/utf8"

// Selection is a caret or selected range of a masked value, in runes.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Caret returns a collapsed selection at offset.
func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// Collapsed reports whether the selection is a plain caret.
func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

// Split holds the raw values on either side of a selection.
type Split struct {
	Prefix string
	Suffix string
}

// Edit is the outcome of an editing operation: the re-masked value and the
// caret offset in it.
type Edit struct {
	Value string `json:"value"`
	Caret int    `json:"caret"`
}

// Split unmasks the text before and after sel. The text after the
// selection is unmasked from the token it is aligned with, so literals
// between the two halves are not mistaken for input.
func (m *StringMask) Split(value string, sel Selection) Split {
	runes := []rune(value)
	start, end := clampSelection(sel, len(runes))
	before, after := string(runes[:start]), string(runes[end:])

	if m.reverse {
		return Split{
			Prefix: m.UnmaskFrom(before, len(runes)-start),
			Suffix: m.UnmaskFrom(after, 0),
		}
	}
	return Split{
		Prefix: m.UnmaskFrom(before, 0),
		Suffix: m.UnmaskFrom(after, end),
	}
}

// Insert replaces sel with text, which may be a single typed character or
// a pasted string, and re-masks the result. The caret lands after the
// inserted text.
func (m *StringMask) Insert(value string, sel Selection, text string) Edit {
	split := m.Split(value, sel)
	return m.splice(split.Prefix+text, split.Suffix)
}

// Backspace removes the selection, or the raw character before a collapsed
// caret.
func (m *StringMask) Backspace(value string, sel Selection) Edit {
	split := m.Split(value, sel)
	prefix := split.Prefix
	if collapsed(value, sel) && prefix != "" {
		_, size := utf8.DecodeLastRuneInString(prefix)
		prefix = prefix[:len(prefix)-size]
	}
	return m.splice(prefix, split.Suffix)
}

// Delete removes the selection, or the raw character after a collapsed
// caret. On forward masks the caret stays at the start of the selection.
func (m *StringMask) Delete(value string, sel Selection) Edit {
	split := m.Split(value, sel)
	suffix := split.Suffix
	if collapsed(value, sel) && suffix != "" {
		_, size := utf8.DecodeRuneInString(suffix)
		suffix = suffix[size:]
	}

	edit := m.splice(split.Prefix, suffix)
	if !m.reverse {
		start, _ := clampSelection(sel, utf8.RuneCountInString(value))
		edit.Caret = min(start, utf8.RuneCountInString(edit.Value))
	}
	return edit
}

// splice masks left+right and places the caret between them.
func (m *StringMask) splice(left, right string) Edit {
	masked := m.Mask(left + right)
	length := utf8.RuneCountInString(masked)

	var caret int
	if m.reverse {
		caret = length - utf8.RuneCountInString(m.Mask(right))
	} else {
		caret = utf8.RuneCountInString(m.Mask(left))
	}
	return Edit{Value: masked, Caret: min(max(caret, 0), length)}
}

// collapsed reports whether sel is a caret once clamped to value.
func collapsed(value string, sel Selection) bool {
	start, end := clampSelection(sel, utf8.RuneCountInString(value))
	return start == end
}

func clampSelection(sel Selection, length int) (int, int) {
	start := min(max(sel.Start, 0), length)
	end := min(max(sel.End, 0), length)
	if start > end {
		start, end = end, start
	}
	return start, end
}
