package store

import "time"

// Config aggregates the reporting sources the API reads from
type Config struct {
	AppName string

	// Sources are opened in order; disabled entries are skipped
	Sources []SourceConfig
}

// SourceConfig names one postgres database and how we talk to it
type SourceConfig struct {
	// Name is the report source key, e.g. "underpass", "tm", "raw"
	Name    string
	PG      PGConfig
	Breaker BreakerConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// StatementTimeout is set as a session parameter on every pooled connection
	StatementTimeout time.Duration

	// Guard/boot knobs:
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// BreakerConfig tunes the per source circuit breaker
// zero values fall back to defaults in newBreaker
type BreakerConfig struct {
	MaxRequests  uint32        // probes allowed while half open
	Interval     time.Duration // closed state count reset window
	Timeout      time.Duration // open state duration before probing
	MinRequests  uint32        // requests seen before the ratio is trusted
	FailureRatio float64
}
