package ai

import (
	"context"

	"hirescore/internal/types"
)

// AIProvider interface for different AI implementations.
// ScoreResume returns the model's raw response text; downstream parsing
// decides how much of it is usable. All methods return token usage
// information, callers can ignore it if not needed.
type AIProvider interface {
	ScoreResume(ctx context.Context, input types.ScoreResumeInput) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
