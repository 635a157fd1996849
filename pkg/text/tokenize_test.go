package text

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single word", "hello", []string{"hello"}},
		{"lowercases", "Hello WORLD", []string{"hello", "world"}},
		{"punctuation stripped", "hello, world! foo-bar", []string{"hello", "world", "foo", "bar"}},
		{"numbers kept", "go1.21 sqlite3", []string{"go1", "21", "sqlite3"}},
		{"only punctuation", "!@#$%", nil},
		{"newlines and tabs", "one\ttwo\nthree", []string{"one", "two", "three"}},
		{"apostrophes split", "don't", []string{"don", "t"}},
		{"accents kept", "café noël", []string{"café", "noël"}},
		{"ligature folded", "ﬁnance", []string{"finance"}},
		{"fullwidth folded", "ＡＢＣ１２３", []string{"abc123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
