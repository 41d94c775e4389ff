package render

import "unicode/utf8"

// TextMeasurer reports the rendered width of text at a font size.
type TextMeasurer interface {
	MeasureText(text string, size float64) (float64, error)
}

// LabelWidth measures text with m. When m is nil or fails the width is estimated as
// half the font size per rune.
func LabelWidth(m TextMeasurer, text string, size float64) float64 {
	if m != nil {
		if width, err := m.MeasureText(text, size); err == nil {
			return width
		}
	}
	return 0.5 * float64(utf8.RuneCountInString(text)) * size
}
