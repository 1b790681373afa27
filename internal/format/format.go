package format

// Engine identifies which source-file family a file or entry belongs to.
type Engine string

const (
	// EngineRPGMaker covers RPG Maker MV/MZ data files (Map*.json,
	// CommonEvents.json, Actors.json, System.json, Troops.json, ...).
	EngineRPGMaker Engine = "rpgmaker"
	// EngineKiriKiri covers KiriKiri/KAG scenario scripts (.ks, .tjs).
	EngineKiriKiri Engine = "kirikiri"
	// EngineRenPy covers Ren'Py scripts (.rpy).
	EngineRenPy Engine = "renpy"
	// EngineJSON covers Unity and other generic JSON files.
	EngineJSON Engine = "json"
	// EngineGeneric covers CSV files and the whole-file fallback.
	EngineGeneric Engine = "generic"
	// EngineSubtitles covers SubRip subtitle files (.srt).
	EngineSubtitles Engine = "subtitles"
)

// Engines is the closed set of supported engine tags.
var Engines = []Engine{
	EngineRPGMaker,
	EngineKiriKiri,
	EngineRenPy,
	EngineJSON,
	EngineGeneric,
	EngineSubtitles,
}
