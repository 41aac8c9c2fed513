package store

import (
	"context"
	"fmt"
	"time"

	"galaxy/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

var sleep = time.Sleep

// openPG opens one source pool and wraps it with our sql adapter
// statements are always measured; logged only when LogSQL is set
func openPG(ctx context.Context, appName string, sc SourceConfig, s *Store) (TxRunner, error) {
	var logTracer pg.QueryTracer
	if sc.PG.LogSQL {
		logTracer = pg.Tracer(s.Log, sc.Name)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:              sc.PG.URL,
		MaxConns:         sc.PG.MaxConns,
		SlowMs:           sc.PG.SlowQueryMs,
		AppName:          appName,
		StatementTimeout: sc.PG.StatementTimeout,
		ReadOnly:         true,
		Tracer:           pg.Chain(logTracer, pg.Metrics(sc.Name)),
	})
	if err != nil {
		return nil, err
	}

	attempts := sc.PG.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	pingTimeout := sc.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx) // pool directly, no SQL trace line
		cancel()

		if lastErr == nil {
			s.Log.Info().Str("source", sc.Name).Int("attempts", i+1).Msg("source ready")
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Str("source", sc.Name).Dur("backoff", backoff).Msg("source not reachable yet")
		sleep(backoff)
		if backoff < backoffCeiling {
			backoff = min(backoff*2, backoffCeiling)
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
