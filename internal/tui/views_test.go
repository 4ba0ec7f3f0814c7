package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short string untouched", "Acme", 10, "Acme"},
		{"exact width untouched", "Acme", 4, "Acme"},
		{"long string gets ellipsis", "Northfield Holdings", 10, "Northfiel…"},
		{"width one keeps first rune", "Acme", 1, "A"},
		{"multibyte name at boundary", "Compañía Médica", 10, "Compañía …"},
		{"cjk name at boundary", "東京振興株式会社", 5, "東京振興…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clip(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
