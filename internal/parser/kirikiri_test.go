package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKiriKiriDialogueWithInlineTags(t *testing.T) {
	content := "*label1\n" +
		"@bg storage=room\n" +
		"; a comment\n" +
		"// another comment\n" +
		"[wait time=100]\n" +
		"Hello [ruby text=world]w[/ruby]!\n" +
		"\n" +
		"[cm][l]\n" +
		"Plain line"

	entries, err := NewKiriKiriParser().Parse("scene1.ks", content)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Inline markup is kept byte-for-byte.
	assert.Equal(t, "Hello [ruby text=world]w[/ruby]!", entries[0].Original)
	assert.Equal(t, "line-5", entries[0].Path)
	assert.Equal(t, "kirikiri:scene1.ks:line-5", entries[0].ID)

	assert.Equal(t, "Plain line", entries[1].Original)
	assert.Equal(t, "line-8", entries[1].Path)
}

func TestKiriKiriTagOnlyLinesSkipped(t *testing.T) {
	tests := []struct {
		name string
		line string
		kept bool
	}{
		{"single tag", "[wait time=100]", false},
		{"several tags", "[cm][np][l]", false},
		{"tag with trailing text", "[wait time=100]...", true},
		{"text with embedded tag", "He said[l] something", true},
		{"reversed brackets", "]oops[", true},
	}
	p := NewKiriKiriParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := p.Parse("t.ks", tt.line)
			require.NoError(t, err)
			if tt.kept {
				assert.Len(t, entries, 1)
			} else {
				assert.Empty(t, entries)
			}
		})
	}
}

func TestKiriKiriSkipsStructureLines(t *testing.T) {
	content := "*start|Start\n@jump target=*next\n;note\n//note\n   \n"
	entries, err := NewKiriKiriParser().Parse("s.ks", content)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
