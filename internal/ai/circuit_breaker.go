package ai

import (
	"fmt"

	"hirescore/internal/config"
	"hirescore/internal/errors"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

// AICircuitBreaker guards the scoring call path. When the model keeps
// failing the breaker opens and requests route straight to the keyword
// fallback instead of stacking timeouts.
type AICircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[*genai.GenerateContentResponse]
}

// ModelCircuitBreaker guards model metadata lookups
type ModelCircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[*genai.Model]
}

// breakerSettings builds the shared gobreaker settings for an operation.
// A nil return from the constructors means the breaker is disabled; callers
// go through the nil-safe Execute wrappers either way.
func breakerSettings(name, operationType string, cfg *config.OperationAIConfig,
	logger *errors.Logger, readyToTrip func(gobreaker.Counts) bool) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.CircuitBreaker.MaxRequests,
		Interval:    cfg.CircuitBreaker.Interval,
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: readyToTrip,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger == nil {
				return
			}
			logger.Info("Circuit breaker state changed",
				"name", name,
				"operation_type", operationType,
				"from", from.String(),
				"to", to.String())
		},
	}
}

// NewAICircuitBreaker creates the scoring-path breaker, or nil when disabled
func NewAICircuitBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *AICircuitBreaker {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	trip := func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= cfg.CircuitBreaker.MinRequests &&
			failureRatio >= cfg.CircuitBreaker.FailureThreshold
	}

	settings := breakerSettings(fmt.Sprintf("AI-%s", operationType), operationType, cfg, logger, trip)
	return &AICircuitBreaker{
		cb: gobreaker.NewCircuitBreaker[*genai.GenerateContentResponse](settings),
	}
}

// NewModelCircuitBreaker creates the metadata-path breaker, or nil when
// disabled. Metadata lookups are not on the scoring path, so the trip
// condition is looser than the operation's configured thresholds.
func NewModelCircuitBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *ModelCircuitBreaker {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	trip := func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 5 && failureRatio >= 0.8
	}

	settings := breakerSettings(fmt.Sprintf("AI-Model-%s", operationType), operationType, cfg, logger, trip)
	return &ModelCircuitBreaker{
		cb: gobreaker.NewCircuitBreaker[*genai.Model](settings),
	}
}

// Execute runs fn under the breaker. A nil breaker executes fn directly.
func (cb *AICircuitBreaker) Execute(fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	if cb == nil || cb.cb == nil {
		return fn()
	}
	return cb.cb.Execute(fn)
}

// ExecuteModel runs fn under the metadata breaker. Nil-safe like Execute.
func (cb *ModelCircuitBreaker) ExecuteModel(fn func() (*genai.Model, error)) (*genai.Model, error) {
	if cb == nil || cb.cb == nil {
		return fn()
	}
	return cb.cb.Execute(fn)
}

// breakerStats renders a breaker state snapshot for the health endpoint
func breakerStats(name, state string, counts gobreaker.Counts) map[string]any {
	return map[string]any{
		"name":    name,
		"state":   state,
		"counts":  counts,
		"enabled": true,
	}
}

var disabledBreakerStats = map[string]any{"enabled": false}

// GetStats returns the scoring breaker's state snapshot
func (cb *AICircuitBreaker) GetStats() map[string]any {
	if cb == nil || cb.cb == nil {
		return disabledBreakerStats
	}
	return breakerStats(cb.cb.Name(), cb.cb.State().String(), cb.cb.Counts())
}

// GetModelStats returns the metadata breaker's state snapshot
func (cb *ModelCircuitBreaker) GetModelStats() map[string]any {
	if cb == nil || cb.cb == nil {
		return disabledBreakerStats
	}
	return breakerStats(cb.cb.Name(), cb.cb.State().String(), cb.cb.Counts())
}

// IsHealthy reports whether the scoring breaker is closed
func (cb *AICircuitBreaker) IsHealthy() bool {
	if cb == nil || cb.cb == nil {
		return true
	}
	return cb.cb.State() == gobreaker.StateClosed
}

// IsModelHealthy reports whether the metadata breaker is closed
func (cb *ModelCircuitBreaker) IsModelHealthy() bool {
	if cb == nil || cb.cb == nil {
		return true
	}
	return cb.cb.State() == gobreaker.StateClosed
}
