//go:build integration_pg

// Package pgtest starts a throwaway postgres for integration tests
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dashkit/internal/platform/store/migrate"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the server every integration test runs against
const Image = "postgres:16-alpine"

// Start runs a container for the life of t and returns its DSN
func Start(t testing.TB) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        Image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "dashkit",
				"POSTGRES_PASSWORD": "dashkit",
				"POSTGRES_DB":       "dashkit",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "start %s", Image)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("postgres://dashkit:dashkit@%s:%s/dashkit?sslmode=disable", host, port.Port())
}

// Migrated is Start followed by every up migration
func Migrated(t testing.TB) string {
	t.Helper()
	dsn := Start(t)
	m, err := migrate.New(dsn, nil)
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, m.Up())
	return dsn
}
