package main

import (
	"context"
	"github.com/intinc/platformexplorer/internal/e2etest"
	"github.com/intinc/platformexplorer/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

var testEnv = map[string]string{
	"PLATFORMEXPLORER_ADDR": "localhost:0",
}

// startTestServer boots the application on a random port. The server is stopped when the test ends.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server, err := e2etest.StartServer(ctx, io.Discard, testhelpers.LookupEnv(testEnv), run)
	require.NoError(t, err)
	return server
}
