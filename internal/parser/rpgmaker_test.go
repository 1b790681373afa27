package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRPGMakerMapShowText(t *testing.T) {
	content := `{"events":[null,null,{"pages":[{"list":[
		{"code":101,"parameters":["face"]},
		{"code":401,"parameters":["Hello"]},
		{"code":401,"parameters":["World"]}
	]}]}]}`

	entries, err := NewRPGMakerParser().Parse("Map001.json", content)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Hello", entries[0].Original)
	assert.Equal(t, "events[2].pages[0].list[1].parameters[0]", entries[0].Path)
	assert.Equal(t, "rpgmaker:Map001.json:events[2].pages[0].list[1].parameters[0]", entries[0].ID)
	assert.Equal(t, "World", entries[1].Original)
	assert.Equal(t, "events[2].pages[0].list[2].parameters[0]", entries[1].Path)
}

func TestRPGMakerMapShowChoices(t *testing.T) {
	content := `{"events":[{"pages":[{"list":[
		{"code":102,"parameters":[["Yes","No"],0]}
	]}]}]}`

	entries, err := NewRPGMakerParser().Parse("Map002.json", content)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Yes", entries[0].Original)
	assert.Equal(t, "events[0].pages[0].list[0].parameters[0][0]", entries[0].Path)
	assert.Equal(t, "No", entries[1].Original)
	assert.Equal(t, "events[0].pages[0].list[0].parameters[0][1]", entries[1].Path)
}

func TestRPGMakerCommonEvents(t *testing.T) {
	content := `[null,{"list":[{"code":401,"parameters":["First"]}]},
		{"list":[{"code":401,"parameters":["Second"]}]}]`

	entries, err := NewRPGMakerParser().Parse("CommonEvents.json", content)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "[1].list[0].parameters[0]", entries[0].Path)
	assert.Equal(t, "[2].list[0].parameters[0]", entries[1].Path)
}

func TestRPGMakerActors(t *testing.T) {
	content := `[null,
		{"name":"Harold","nickname":"Hero","profile":"A brave soul."},
		{"name":"Therese","nickname":"","profile":"Quiet."}]`

	entries, err := NewRPGMakerParser().Parse("Actors.json", content)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.Equal(t, "[1].name", entries[0].Path)
	assert.Equal(t, "[1].nickname", entries[1].Path)
	assert.Equal(t, "[1].profile", entries[2].Path)
	// Empty nickname is dropped; name and profile remain.
	assert.Equal(t, "[2].name", entries[3].Path)
	assert.Equal(t, "[2].profile", entries[4].Path)
}

func TestRPGMakerSystem(t *testing.T) {
	content := `{"gameTitle":"My Quest","terms":{
		"basic":["Level","","HP"],
		"commands":["Fight"],
		"params":["Attack"],
		"messages":{"actionFailure":"It failed!","alwaysDash":"Always Dash"}
	},"weaponTypes":["","Sword"],"armorTypes":["Shield"],"skillTypes":["Magic"],"elements":["Fire"]}`

	entries, err := NewRPGMakerParser().Parse("System.json", content)
	require.NoError(t, err)

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{
		"gameTitle",
		"terms.basic[0]", "terms.basic[2]",
		"terms.commands[0]",
		"terms.params[0]",
		"terms.messages.actionFailure", "terms.messages.alwaysDash",
		"weaponTypes[1]",
		"armorTypes[0]",
		"skillTypes[0]",
		"elements[0]",
	}, paths)
}

func TestRPGMakerEntityTable(t *testing.T) {
	content := `[null,
		{"name":"Potion","description":"Restores HP.","message1":" recovers!"},
		null,
		{"name":"Ether","victoryMessage":"Won!","defeatMessage":"Lost..."}]`

	entries, err := NewRPGMakerParser().Parse("Items.json", content)
	require.NoError(t, err)

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{
		"[1].name", "[1].description", "[1].message1",
		"[3].name", "[3].victoryMessage", "[3].defeatMessage",
	}, paths)
}

func TestRPGMakerTroops(t *testing.T) {
	// Records without a "name" field route to the troop shape.
	content := `[null,{"members":[{"enemyId":1}],"pages":[{"list":[
		{"code":401,"parameters":["A bat appears!"]}
	]}]}]`

	entries, err := NewRPGMakerParser().Parse("Troops.json", content)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "[1].pages[0].list[0].parameters[0]", entries[0].Path)
}

func TestRPGMakerShapePriorityListBeforeNickname(t *testing.T) {
	// A record with both "list" and "nickname" is a common-events table:
	// probe order decides.
	content := `[null,{"list":[{"code":401,"parameters":["Text"]}],"nickname":"X"}]`

	entries, err := NewRPGMakerParser().Parse("data.json", content)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "[1].list[0].parameters[0]", entries[0].Path)
}

func TestRPGMakerMalformedJSON(t *testing.T) {
	entries, err := NewRPGMakerParser().Parse("Map001.json", `{"events":[`)
	assert.Error(t, err)
	assert.Empty(t, entries)
}

func TestRPGMakerDeterministicAcrossParses(t *testing.T) {
	content := `{"gameTitle":"T","terms":{"messages":{"b":"B","a":"A","c":"C"}}}`
	p := NewRPGMakerParser()

	first, err := p.Parse("System.json", content)
	require.NoError(t, err)
	second, err := p.Parse("System.json", content)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
