package translator

import "context"

// Request carries the per-batch translation parameters shared by all
// providers.
type Request struct {
	// TargetLang is the language the texts are translated into.
	TargetLang string
	// FormatHint names the source-file family, e.g. "rpgmaker".
	FormatHint string
	// Context is an optional free-form label for the batch.
	Context string
}

// Provider is an external translation backend invoked as an ordered
// batch-in/batch-out text transform: result index i corresponds to
// request index i. Providers should echo the original text for items
// they cannot translate; the runner enforces that rule regardless, so a
// misbehaving provider degrades instead of aborting a run.
type Provider interface {
	Name() string
	Translate(ctx context.Context, texts []string, req Request) ([]string, error)
}
