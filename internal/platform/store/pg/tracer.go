package pg

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"galaxy/internal/platform/logger"
)

// QueryEvent is one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer observes finished statements
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement of source. It is only wired when LOG_SQL is on,
// so it logs at info regardless of the root level; slow statements go out as warn.
func Tracer(root logger.Logger, source string) QueryTracer {
	return sqlLog{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Str("source", source).Logger()}
}

type sqlLog struct{ log logger.Logger }

func (s sqlLog) OnQuery(ctx context.Context, ev QueryEvent) {
	lvl := zerolog.InfoLevel
	if ev.Slow {
		lvl = zerolog.WarnLevel
	}
	s.log.WithLevel(lvl).
		Str("query", Label(ctx)).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", strings.Join(strings.Fields(ev.SQL), " ")).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// Chain fans one event out to every non nil tracer; nil when none remain
func Chain(tracers ...QueryTracer) QueryTracer {
	var live fanout
	for _, t := range tracers {
		if t != nil {
			live = append(live, t)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return live
}

type fanout []QueryTracer

func (f fanout) OnQuery(ctx context.Context, ev QueryEvent) {
	for _, t := range f {
		t.OnQuery(ctx, ev)
	}
}
