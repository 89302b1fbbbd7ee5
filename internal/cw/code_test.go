// internal/cw/code_test.go
package cw

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		seq  string
		want rune
	}{
		{".-", 'A'},
		{"....", 'H'},
		{"-", 'T'},
		{".", 'E'},
		{"--..", 'Z'},
		{"-----", '0'},
		{".----", '1'},
		{"----.", '9'},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			got, ok := Lookup(tt.seq)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.seq)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.seq, got, tt.want)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	for _, seq := range []string{"", "..--..", ".-.-.-", "--------", "x"} {
		if ch, ok := Lookup(seq); ok {
			t.Errorf("Lookup(%q) = %q, want not found", seq, ch)
		}
	}
}

func TestTableCoverage(t *testing.T) {
	if len(codeTable) != 36 {
		t.Errorf("code table has %d entries, want 36 (A-Z plus 0-9)", len(codeTable))
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		if _, ok := Sequence(ch); !ok {
			t.Errorf("no sequence for %q", ch)
		}
	}
	for ch := '0'; ch <= '9'; ch++ {
		if _, ok := Sequence(ch); !ok {
			t.Errorf("no sequence for %q", ch)
		}
	}
}

func TestSequence_InvertsLookup(t *testing.T) {
	for seq, ch := range codeTable {
		got, ok := Sequence(ch)
		if !ok {
			t.Errorf("Sequence(%q) not found", ch)
			continue
		}
		if got != seq {
			t.Errorf("Sequence(%q) = %q, want %q", ch, got, seq)
		}
	}
}

func TestSequence_LowerCase(t *testing.T) {
	got, ok := Sequence('a')
	if !ok || got != ".-" {
		t.Errorf("Sequence('a') = %q, %v, want .-", got, ok)
	}
	got, ok = Sequence('s')
	if !ok || got != "..." {
		t.Errorf("Sequence('s') = %q, %v, want ...", got, ok)
	}
}

func TestSequence_Unknown(t *testing.T) {
	for _, ch := range []rune{'?', '!', ' ', 'é', '_'} {
		if seq, ok := Sequence(ch); ok {
			t.Errorf("Sequence(%q) = %q, want not found", ch, seq)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"single letter", "e", "."},
		{"single word", "cq", "-.-. --.-"},
		{"two words", "hi there", ".... ..  - .... . .-. ."},
		{"mixed case and digits", "Go 73", "--. ---  --... ...--"},
		{"unmappable runes dropped", "a?b", ".- -..."},
		{"word of only unmappable runes", "!!! sos", "... --- ..."},
		{"collapses whitespace", "  e \t t ", ".  -"},
		{"empty", "", ""},
		{"spaces only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.text); got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
