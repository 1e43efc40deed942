package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTelemetry_NoEndpoint(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), "test-service", "v1.0.0", "test", "", nil)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     exportTarget
	}{
		{
			name:     "bare host",
			endpoint: "collector:4318",
			want:     exportTarget{host: "collector:4318", tracePath: "/v1/traces", logPath: "/v1/logs"},
		},
		{
			name:     "http is insecure",
			endpoint: "http://localhost:4318",
			want:     exportTarget{host: "localhost:4318", insecure: true, tracePath: "/v1/traces", logPath: "/v1/logs"},
		},
		{
			name:     "https with otlp base path",
			endpoint: "https://otlp-gateway.grafana.net/otlp",
			want:     exportTarget{host: "otlp-gateway.grafana.net", tracePath: "/otlp/v1/traces", logPath: "/otlp/v1/logs"},
		},
		{
			name:     "signal path is stripped",
			endpoint: "https://in.example.com/tenant/v1/traces",
			want:     exportTarget{host: "in.example.com", tracePath: "/tenant/v1/traces", logPath: "/tenant/v1/logs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseEndpoint(tt.endpoint))
		})
	}
}

func TestTracer(t *testing.T) {
	assert.NotNil(t, Tracer("test-tracer"))
}

func TestParseHeaders(t *testing.T) {
	assert.Empty(t, ParseHeaders(""))
	assert.Equal(t,
		map[string]string{"Authorization": "Basic abc==", "x-team": "chef"},
		ParseHeaders("Authorization=Basic abc==, x-team=chef,broken"),
	)
}
