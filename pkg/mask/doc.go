/*
Package mask converts raw input to masked display strings and back.

Pattern masks are compiled from a pattern and a rule table:

	m, err := mask.Compile(mask.Config{Pattern: "##//##//####"})
	m.Mask("07011985")     // "07/01/1985"
	m.Unmask("07/01/1985") // "07011985"

In a pattern, '/' escapes the next character and '?' makes the next token
optional. The default rules are '#' for a digit, 'C' for an ASCII letter and
'0' for a fixed zero. Custom rules load from YAML (LoadRulesFile).

Number masks group digits and swap delimiters:

	n, err := mask.NewNumberMask(mask.NumberConfig{Format: mask.DefaultNumberFormat()})
	n.Mask("4000")   // "4 000"
	n.Format(4000)   // "4 000,00"
	n.Unmask("4 000,00") // "4000.00"

Compiled masks are immutable and safe for concurrent use. Named masks of both
kinds can be kept in a preset file (LoadPresetFile).
*/
package mask
