package sentiment

import (
	"context"
	"fmt"

	"chatbot/app/config"

	"github.com/samber/do"
)

// Scorer rates free text with a polarity in [-1, 1].
type Scorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

func New(di *do.Injector) (Scorer, error) {
	cfg := do.MustInvoke[*config.Config](di)

	switch cfg.Sentiment.Provider {
	case "lexicon":
		return NewLexicon(), nil
	case "openai":
		return NewOpenAI(cfg.Sentiment.OpenAI), nil
	default:
		return nil, fmt.Errorf("unknown sentiment provider %q", cfg.Sentiment.Provider)
	}
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
