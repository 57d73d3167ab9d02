package ai

import (
	"testing"
	"time"

	"hirescore/internal/config"

	"google.golang.org/genai"
)

func TestCircuitBreakerConfigurationMapping(t *testing.T) {
	// Test that configuration values are properly applied to circuit breakers

	customConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      10,
			Interval:         120 * time.Second,
			Timeout:          90 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.8,
		},
	}

	cb := NewAICircuitBreaker("Score", customConfig, nil)

	if cb == nil {
		t.Fatal("Circuit breaker should not be nil")
	}

	stats := cb.GetStats()
	if stats == nil {
		t.Fatal("Circuit breaker stats should not be nil")
	}

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}

	expectedName := "AI-Score"
	if name != expectedName {
		t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
	}

	state, ok := stats["state"].(string)
	if !ok {
		t.Fatal("Circuit breaker state not found")
	}
	if state != "closed" {
		t.Errorf("Expected initial state 'closed', got '%s'", state)
	}

	enabled, ok := stats["enabled"].(bool)
	if !ok {
		t.Fatal("Circuit breaker enabled status not found")
	}
	if !enabled {
		t.Error("Circuit breaker should be enabled")
	}

	if !cb.IsHealthy() {
		t.Error("Circuit breaker should be healthy initially")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	// Test that circuit breaker returns nil when disabled

	disabledConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}

	cb := NewAICircuitBreaker("Score", disabledConfig, nil)

	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}

	// Disabled breakers still execute the wrapped function directly
	called := false
	result, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Error("expected nil response from passthrough execution")
	}
	if !called {
		t.Error("wrapped function should have been executed")
	}

	if !cb.IsHealthy() {
		t.Error("Nil circuit breaker should report healthy")
	}

	stats := cb.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("Nil circuit breaker stats should report enabled=false")
	}
}

func TestModelCircuitBreakerDisabled(t *testing.T) {
	disabledConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}

	cb := NewModelCircuitBreaker("Score", disabledConfig, nil)
	if cb != nil {
		t.Fatal("Model circuit breaker should be nil when disabled")
	}
	if !cb.IsModelHealthy() {
		t.Error("Nil model circuit breaker should report healthy")
	}
}
