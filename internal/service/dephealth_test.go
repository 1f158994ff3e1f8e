package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewDephealthService(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ds, err := NewDephealthServiceWithRegisterer(
		"idp-console", "idp-console",
		"https://example.eu.auth0.com",
		30*time.Second, logger, prometheus.NewRegistry(),
	)
	require.NoError(t, err)
	require.NotNil(t, ds)
}
