package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenPyDialogue(t *testing.T) {
	content := "label start:\n" +
		"    e \"Hello, world!\"\n" +
		"    \"Narration without a speaker.\"\n" +
		"    scene bg room\n" +
		"    e \"She said \\\"hi\\\" to me.\"\n"

	entries, err := NewRenPyParser().Parse("script.rpy", content)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Hello, world!", entries[0].Original)
	assert.Equal(t, "line-1", entries[0].Path)
	assert.Equal(t, "renpy:script.rpy:line-1", entries[0].ID)

	assert.Equal(t, "Narration without a speaker.", entries[1].Original)
	assert.Equal(t, "line-2", entries[1].Path)

	// Escaped quotes stay inside the payload as written.
	assert.Equal(t, `She said \"hi\" to me.`, entries[2].Original)
	assert.Equal(t, "line-4", entries[2].Path)
}

func TestRenPyEmptyPayloadDiscarded(t *testing.T) {
	entries, err := NewRenPyParser().Parse("s.rpy", "    e \"   \"\n    e \"\"")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenPyNonDialogueLines(t *testing.T) {
	content := "define e = Character(\"Eileen\")\n" +
		"show eileen happy \"not dialogue\"\n" +
		"$ score = 1\n"
	entries, err := NewRenPyParser().Parse("s.rpy", content)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMatchRenPyLineParts(t *testing.T) {
	prefix, payload, suffix, ok := MatchRenPyLine(`    e "Hi there"  `)
	require.True(t, ok)
	assert.Equal(t, `    e "`, prefix)
	assert.Equal(t, "Hi there", payload)
	assert.Equal(t, `"  `, suffix)
}
