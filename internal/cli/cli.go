package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"script-translator/internal/config"
	"script-translator/internal/translator"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "script-translator",
		Short: "Extract, translate and reinject game-script text",
		Long: "Extracts translatable strings from game-script files (RPG Maker, KiriKiri, " +
			"Ren'Py, JSON, CSV, SRT), tracks their translations in a persistent " +
			"translation memory, and reinjects them losslessly into fresh copies of the originals.",
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(translateCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(tmCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <input-dir>",
		Short: "Parse files and report extracted entries without translating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0])
		},
	}
}

func translateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <input-dir> <output-dir>",
		Short: "Run the full pipeline: extract, TM pre-fill, batch translate, reinject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, _ := cmd.Flags().GetString("lang")
			return runTranslate(args[0], args[1], lang)
		},
	}
	cmd.Flags().String("lang", "", "Target language (default from TARGET_LANG)")
	return cmd
}

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <input-dir> <output-dir>",
		Short: "Reinject translations from the TM only, no provider calls",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, _ := cmd.Flags().GetString("lang")
			return runApply(args[0], args[1], lang)
		},
	}
	cmd.Flags().String("lang", "", "Target language (default from TARGET_LANG)")
	return cmd
}

func tmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tm",
		Short: "Inspect or clear the translation memory",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Report the number of cached translation pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTMStats()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached translation pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTMClear()
		},
	})
	return cmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newProvider builds the configured translation backend.
func newProvider(cfg *config.Config) (translator.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY")
		}
		return translator.NewGeminiProvider(cfg.GeminiAPIKey, cfg.TranslationModel), nil
	case "googlefree":
		return translator.NewGoogleFreeProvider(cfg.RequestDelay), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
