package applier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	segs, err := parsePath("events[2].pages[0].list[5].parameters[0]")
	require.NoError(t, err)
	require.Len(t, segs, 8)
	assert.Equal(t, segment{key: "events"}, segs[0])
	assert.Equal(t, segment{index: 2, isIndex: true}, segs[1])
	assert.Equal(t, segment{key: "parameters"}, segs[6])
	assert.Equal(t, segment{index: 0, isIndex: true}, segs[7])
}

func TestParsePathLeadingIndex(t *testing.T) {
	segs, err := parsePath("[3].name")
	require.NoError(t, err)
	assert.Equal(t, []segment{
		{index: 3, isIndex: true},
		{key: "name"},
	}, segs)
}

func TestParsePathNestedChoiceIndex(t *testing.T) {
	segs, err := parsePath("events[0].pages[0].list[1].parameters[0][2]")
	require.NoError(t, err)
	assert.Equal(t, segment{index: 2, isIndex: true}, segs[len(segs)-1])
}

func TestParsePathDottedKeys(t *testing.T) {
	segs, err := parsePath("terms.messages.actionFailure")
	require.NoError(t, err)
	assert.Equal(t, []segment{
		{key: "terms"}, {key: "messages"}, {key: "actionFailure"},
	}, segs)
}

func TestParsePathErrors(t *testing.T) {
	for _, path := range []string{"", "a[", "a[x]"} {
		_, err := parsePath(path)
		assert.Error(t, err, path)
	}
}

func TestStepAndAssign(t *testing.T) {
	root := map[string]any{
		"items": []any{"a", "b"},
	}

	v, ok := step(root, segment{key: "items"})
	require.True(t, ok)
	_, ok = step(v, segment{index: 5, isIndex: true})
	assert.False(t, ok)

	require.True(t, assign(v, segment{index: 1, isIndex: true}, "c"))
	assert.Equal(t, []any{"a", "c"}, root["items"])

	// Assigning a missing key is a miss, not an insert.
	assert.False(t, assign(root, segment{key: "nope"}, "x"))
}
