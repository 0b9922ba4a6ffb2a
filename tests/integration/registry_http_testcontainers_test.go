//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"depsolve/internal/adapters"
	"depsolve/internal/types"
)

// TestRegistryHTTPOracleAgainstContainer drives adapters.RegistryHTTPOracle
// against a real HTTP server running in a container, rather than an
// in-process httptest server, to exercise the adapter's network path (DNS,
// TCP, JSON decoding) the way it behaves against a real registry.
func TestRegistryHTTPOracleAgainstContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration test in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startRegistryMock(ctx, t)
	t.Cleanup(cleanup)

	oracle := adapters.NewRegistryHTTPOracle(endpoint)

	ref := types.PackageRef{Name: "foo", Source: types.SourceHosted}
	versions, err := oracle.Versions(ctx, ref)
	require.NoError(t, err)
	require.Len(t, versions, 2)

	highest := versions[0]
	if versions[1].GreaterThan(highest) {
		highest = versions[1]
	}
	require.Equal(t, "1.1.0", highest.String())

	spec, err := oracle.Pubspec(ctx, types.PackageId{Ref: ref, Version: highest})
	require.NoError(t, err)
	require.Len(t, spec.Dependencies, 1)
	require.Equal(t, "bar", spec.Dependencies[0].Ref.Name)
	require.True(t, spec.Dependencies[0].Constraint.Allows(types.MustParseVersion("2.0.0")))

	_, err = oracle.Versions(ctx, types.PackageRef{Name: "missing", Source: types.SourceHosted})
	require.ErrorIs(t, err, adapters.ErrPackageNotFound)
}

func startRegistryMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", registryMockScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

// registryMockScript serves a fixed one-package registry payload: foo has
// versions 1.0.0 and 1.1.0, and 1.1.0 depends on bar ^2.0.0.
const registryMockScript = `
import json
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

PACKAGES = {
    "foo": {"versions": ["1.0.0", "1.1.0"]},
}

PUBSPECS = {
    ("foo", "1.0.0"): {"dependencies": {}, "environment": {}},
    ("foo", "1.1.0"): {"dependencies": {"bar": "^2.0.0"}, "environment": {}},
}

class Handler(BaseHTTPRequestHandler):
    def do_GET(self):
        parts = [p for p in self.path.split("/") if p]
        if len(parts) == 2 and parts[0] == "packages":
            name = parts[1]
            if name in PACKAGES:
                self.send_response(200)
                self.send_header("Content-Type", "application/json")
                self.end_headers()
                self.wfile.write(json.dumps(PACKAGES[name]).encode("utf-8"))
                return
            self.send_response(404)
            self.end_headers()
            return
        if len(parts) == 3 and parts[0] == "packages":
            key = (parts[1], parts[2])
            if key in PUBSPECS:
                self.send_response(200)
                self.send_header("Content-Type", "application/json")
                self.end_headers()
                self.wfile.write(json.dumps(PUBSPECS[key]).encode("utf-8"))
                return
            self.send_response(404)
            self.end_headers()
            return
        self.send_response(404)
        self.end_headers()

    def log_message(self, *args):
        pass

ThreadingHTTPServer(("0.0.0.0", 8080), Handler).serve_forever()
`
