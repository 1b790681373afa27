package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"script-translator/internal/config"
	"script-translator/internal/textutil"
	"script-translator/internal/translator"
)

// runExtract handles the `extract` command.
func runExtract(inputDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	store, err := importDir(ctx, cfg, inputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	perFile := make(map[string]int)
	for _, e := range store.Entries() {
		perFile[e.File]++
	}
	for _, snap := range store.Files() {
		fmt.Printf("%s\t%d entries\n", snap.Name, perFile[snap.Name])
	}

	entries := store.Entries()
	fmt.Printf("total\t%d entries\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %s\t%s\n", e.ID, textutil.Truncate(e.Original, 60))
	}
	return nil
}

// runTranslate handles the `translate` command: the full pipeline from
// import to written output.
func runTranslate(inputDir, outputDir, lang string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if lang == "" {
		lang = cfg.TargetLang
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	store, err := importDir(ctx, cfg, inputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	memory, closeTM := openTM(ctx, cfg)
	defer closeTM()

	// Known strings come from the TM first; only the rest hits the
	// provider.
	memory.Fill(ctx, store, store.Engine(), lang)

	var pending int
	entries := store.Entries()
	targets := entries[:0:0]
	for _, e := range entries {
		if e.Translated == "" {
			targets = append(targets, e)
			pending++
		}
	}
	log.Info().Int("pending", pending).Str("lang", lang).Msg("Translation plan")

	runner := translator.NewRunner(store, memory, provider, cfg.BatchSize, cfg.RequestDelay)
	runner.Run(ctx, targets, lang)

	return writeOutputs(store, outputDir)
}

// runApply handles the `apply` command: reinjection using only what the
// translation memory already knows.
func runApply(inputDir, outputDir, lang string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if lang == "" {
		lang = cfg.TargetLang
	}

	store, err := importDir(ctx, cfg, inputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	memory, closeTM := openTM(ctx, cfg)
	defer closeTM()

	filled := memory.Fill(ctx, store, store.Engine(), lang)
	log.Info().Int("filled", filled).Str("lang", lang).Msg("Applying from translation memory")

	return writeOutputs(store, outputDir)
}

// runTMStats handles `tm stats`.
func runTMStats() error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	memory, closeTM := openTM(ctx, cfg)
	defer closeTM()

	fmt.Printf("translation memory: %d pairs\n", memory.Len())
	return nil
}

// runTMClear handles `tm clear`.
func runTMClear() error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	memory, closeTM := openTM(ctx, cfg)
	defer closeTM()

	if err := memory.Clear(ctx); err != nil {
		return fmt.Errorf("clear translation memory: %w", err)
	}
	log.Info().Msg("Translation memory cleared")
	return nil
}
