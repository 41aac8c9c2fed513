//go:build integration_pg

// Package pgtest starts a throwaway postgres for integration tests.
// The first image pull can take a while.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const image = "postgres:16-alpine"

// Start runs postgres, applies fixtures in order over a plain connection and
// returns the dsn. The container is removed when t finishes.
func Start(t *testing.T, fixtures ...string) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "galaxy",
				"POSTGRES_PASSWORD": "galaxy",
				"POSTGRES_DB":       "galaxy",
			},
			// the entrypoint restarts the server once after initdb
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", image, err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://galaxy:galaxy@%s:%s/galaxy?sslmode=disable", host, port.Port())

	if len(fixtures) == 0 {
		return dsn
	}
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close(context.Background())
	for i, sql := range fixtures {
		if _, err := conn.Exec(ctx, sql); err != nil {
			t.Fatalf("fixture %d: %v", i, err)
		}
	}
	return dsn
}
