// internal/cw/code.go
package cw

import "strings"

// codeTable maps symbol sequences to the ITU letters and digits. The trainer
// intentionally covers only A-Z and 0-9; punctuation and prosigns are out of
// scope.
var codeTable = map[string]rune{
	".-":   'A',
	"-...": 'B',
	"-.-.": 'C',
	"-..":  'D',
	".":    'E',
	"..-.": 'F',
	"--.":  'G',
	"....": 'H',
	"..":   'I',
	".---": 'J',
	"-.-":  'K',
	".-..": 'L',
	"--":   'M',
	"-.":   'N',
	"---":  'O',
	".--.": 'P',
	"--.-": 'Q',
	".-.":  'R',
	"...":  'S',
	"-":    'T',
	"..-":  'U',
	"...-": 'V',
	".--":  'W',
	"-..-": 'X',
	"-.--": 'Y',
	"--..": 'Z',

	"-----": '0',
	".----": '1',
	"..---": '2',
	"...--": '3',
	"....-": '4',
	".....": '5',
	"-....": '6',
	"--...": '7',
	"---..": '8',
	"----.": '9',
}

// charTable is the inverse mapping, built once for encoding.
var charTable = make(map[rune]string, len(codeTable))

func init() {
	for seq, ch := range codeTable {
		charTable[ch] = seq
	}
}

// Lookup resolves a symbol sequence to its character. The second return is
// false for sequences with no table entry, including the empty sequence.
func Lookup(seq string) (rune, bool) {
	ch, ok := codeTable[seq]
	return ch, ok
}

// Sequence returns the symbol sequence for a character, accepting lower case.
func Sequence(ch rune) (string, bool) {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	seq, ok := charTable[ch]
	return seq, ok
}

// Encode renders text as a playable token string: characters become their
// symbol sequences joined by single spaces, word breaks become double
// spaces. Runes without a table entry are dropped.
func Encode(text string) string {
	words := strings.Fields(text)
	encoded := make([]string, 0, len(words))
	for _, word := range words {
		chars := make([]string, 0, len(word))
		for _, r := range word {
			if seq, ok := Sequence(r); ok {
				chars = append(chars, seq)
			}
		}
		if len(chars) > 0 {
			encoded = append(encoded, strings.Join(chars, " "))
		}
	}
	return strings.Join(encoded, "  ")
}
