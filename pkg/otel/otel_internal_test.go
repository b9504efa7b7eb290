package otel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportGRPC(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "")
	t.Setenv("OTEL_EXPORTER_OTLP_LOGS_PROTOCOL", "")

	require.False(t, exportGRPC("TRACES"))

	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "GRPC")
	require.True(t, exportGRPC("TRACES"))

	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "http/protobuf")
	require.False(t, exportGRPC("TRACES"))
	require.True(t, exportGRPC("METRICS"))

	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf")
	t.Setenv("OTEL_EXPORTER_OTLP_LOGS_PROTOCOL", "grpc")
	require.True(t, exportGRPC("LOGS"))
}
