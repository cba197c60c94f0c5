// number.go implements the numeric text conversions: Roman numerals,
// bijective base-26 letter sequences, and locale-aware digit grouping.
package scribe

import (
	"fmt"
	"regexp"
	"strings"
)

var romanTable = []struct {
	arabic int
	roman  string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"},
	{1, "I"},
}

// romanNumeral converts a positive integer to an uppercase Roman numeral
// using standard subtractive notation.
func romanNumeral(n int) (string, error) {
	if n <= 0 || n >= 4000 {
		return "", fmt.Errorf("unsupported number for conversion to Roman: %d", n)
	}
	var b strings.Builder
	for _, entry := range romanTable {
		for n >= entry.arabic {
			b.WriteString(entry.roman)
			n -= entry.arabic
		}
	}
	return b.String(), nil
}

// alphaLatin converts a positive integer to a bijective base-26 letter
// sequence: 1 -> A, 26 -> Z, 27 -> AA.
func alphaLatin(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("unsupported number for conversion to letters: %d", n)
	}
	var letters []byte
	for n > 0 {
		n--
		letters = append(letters, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters), nil
}

// Grouping separators per locale mode. The neutral mode formats numbers
// verbatim; english groups thousands with a comma; french with a no-break
// space. The minus sign renders as an en-dash in the grouped modes.
var numberSeparators = map[string]string{
	"neutral": "",
	"english": ",",
	"french":  " ",
}

var numberRegexp = regexp.MustCompile(`^([-+]?)(\d+)(?:([.,])(\d+))?$`)

// formatNumber formats a numeric literal under the given locale mode.
// The literal may use '.' or ',' as decimal separator; the separator is
// preserved. The integer part is grouped by three digits from the right,
// the fractional part by three digits from the left.
func formatNumber(value, mode string) (string, error) {
	sep, ok := numberSeparators[mode]
	if !ok {
		known := "english, french, neutral"
		return "", fmt.Errorf("unknown number mode: %q; expected one of: %s", mode, known)
	}

	m := numberRegexp.FindStringSubmatch(value)
	if m == nil {
		return "", fmt.Errorf("invalid number: %q", value)
	}
	if sep == "" {
		return value, nil
	}
	sign, intPart, decimalSep, fracPart := m[1], m[2], m[3], m[4]

	var b strings.Builder
	if sign == "-" {
		b.WriteString("–")
	} else {
		b.WriteString(sign)
	}

	first := len(intPart) % 3
	if first == 0 {
		first = 3
	}
	for i := 0; i < len(intPart); {
		end := i + first
		first = 3
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(intPart[i:end])
		i = end
	}

	if decimalSep != "" {
		b.WriteString(decimalSep)
		for i := 0; i < len(fracPart); i += 3 {
			if i > 0 {
				b.WriteString(sep)
			}
			end := i + 3
			if end > len(fracPart) {
				end = len(fracPart)
			}
			b.WriteString(fracPart[i:end])
		}
	}
	return b.String(), nil
}
