package gin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/config"
)

func TestServer_RunReturnsCleanlyAfterShutdown(t *testing.T) {
	engine := NewEngine()
	server := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, engine)

	// Shutting down first puts the server in the closed state, so Run
	// returns immediately without reporting an error.
	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, server.Run())
}

func TestNewServer_NilEngine(t *testing.T) {
	server := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, nil)
	assert.Error(t, server.Run())
}
