// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/platform/config"
	perr "galaxy/internal/platform/errors"
	"galaxy/internal/platform/logger"
)

// Deps is what every report module is built from; the zero value is usable
// and reports every source as unavailable
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// DB resolves a runner per report source; *store.Store in production
	DB repokit.Sources

	// Settings apply at the start of every report snapshot, e.g. work_mem
	Settings []repokit.Setting

	// QueryTimeout bounds one report snapshot; zero leaves only the per source statement_timeout
	QueryTimeout time.Duration
}

// Source returns the runner for src with Settings applied
func (d Deps) Source(src report.Source) (repokit.TxRunner, error) {
	if d.DB == nil {
		return nil, perr.Unavailablef("no database configured for %s", src)
	}
	r, err := repokit.For(d.DB, src)
	if err != nil {
		return nil, err
	}
	return repokit.Configure(r, d.Settings...), nil
}
