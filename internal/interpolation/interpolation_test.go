package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectRestoreRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		protected string
	}{
		{"rpgmaker escape", `You got \G[20] gold!`, "You got {{var_1}} gold!"},
		{"kag tag", "Hello [ruby text=world]w[/ruby]!", "Hello {{var_1}}w{{var_2}}!"},
		{"printf verb", "HP: %d / %d", "HP: {{var_1}} / {{var_2}}"},
		{"braced index", "Found {0} items", "Found {{var_1}} items"},
		{"dollar brace", "Hi ${name}!", "Hi {{var_1}}!"},
		{"plain text untouched", "Nothing special here.", "Nothing special here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			protected, mappings := Protect(tt.text)
			assert.Equal(t, tt.protected, protected)
			assert.Equal(t, tt.text, Restore(protected, mappings))
		})
	}
}

func TestProtectOverlapKeepsLongerSpan(t *testing.T) {
	// \C[2] also contains a bare [2]; only the full escape is tokenized.
	protected, mappings := Protect(`\C[2]Hero\C[0]`)
	assert.Equal(t, "{{var_1}}Hero{{var_2}}", protected)
	require.Len(t, mappings, 2)
	assert.Equal(t, `\C[2]`, mappings[0].Original)
	assert.Equal(t, `\C[0]`, mappings[1].Original)
}

func TestRestoreSurvivesReorderedTokens(t *testing.T) {
	protected, mappings := Protect("%s hit %s!")
	require.Equal(t, "{{var_1}} hit {{var_2}}!", protected)

	// A translation may legally move tokens around.
	out := Restore("{{var_2}}は{{var_1}}に殴られた!", mappings)
	assert.Equal(t, "%sは%sに殴られた!", out)
}
