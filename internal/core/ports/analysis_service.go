package ports

import "context"

// TextGenerator is the external generative text collaborator. It takes a
// prompt and returns free-form text; failures may be transient.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalysisService produces a consumption analysis for a user's meters.
type AnalysisService interface {
	Analyze(ctx context.Context, userID string) (string, error)
}
