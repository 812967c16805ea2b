package tracing_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/harrison/levelverify/internal/config"
	"github.com/harrison/levelverify/internal/tracing"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TracingConfig
	}{
		{"disabled with endpoint", config.TracingConfig{Endpoint: "http://localhost:4318"}},
		{"enabled without endpoint", config.TracingConfig{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := otel.GetTracerProvider()

			shutdown, err := tracing.Setup(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown error: %v", err)
			}
			if otel.GetTracerProvider() != before {
				t.Errorf("no-op setup must not replace the global provider")
			}
		})
	}
}

func TestSetup_CreatesProviderWhenEnabled(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	tests := []struct {
		name     string
		endpoint string
	}{
		// Non-routable addresses so no export actually happens.
		{"url", "http://192.0.2.1:4318"},
		{"host and port", "192.0.2.1:4318"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := tracing.Setup(context.Background(), config.TracingConfig{
				Enabled:     true,
				Endpoint:    tt.endpoint,
				ServiceName: "levelverify-test",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown error: %v", err)
			}
		})
	}
}
