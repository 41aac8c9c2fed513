package modkit

import (
	"context"
	"testing"

	"galaxy/internal/core/report"
	"galaxy/internal/modkit/repokit"
	"galaxy/internal/platform/config"
	perr "galaxy/internal/platform/errors"
)

func TestDeps_ZeroValue_IsOK(t *testing.T) {
	t.Parallel()
	var d Deps
	if _, err := d.Source(report.SourceUnderpass); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("zero deps should report unavailable, got %v", err)
	}
}

type oneSource struct{ r repokit.TxRunner }

func (o oneSource) Source(name string) (repokit.TxRunner, error) {
	if name != "tm" {
		return nil, perr.Unavailablef("source %q is not configured", name)
	}
	return o.r, nil
}

// nopRunner answers set_config and counts it
type nopRunner struct{ sets *int }

func (n nopRunner) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (n nopRunner) QueryRow(_ context.Context, sql string, _ ...any) repokit.Row {
	*n.sets++
	return echoRow{}
}
func (n nopRunner) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(n) }

type echoRow struct{}

func (echoRow) Scan(dest ...any) error { *dest[0].(*string) = "64MB"; return nil }

func TestDeps_SourceAppliesSettings(t *testing.T) {
	t.Parallel()

	sets := 0
	d := Deps{
		Cfg:      config.New(),
		DB:       oneSource{r: nopRunner{sets: &sets}},
		Settings: []repokit.Setting{{Name: "work_mem", Value: "64MB"}},
	}
	r, err := d.Source(report.SourceTaskingManager)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Tx(context.Background(), func(repokit.Queryer) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if sets != 1 {
		t.Fatalf("work_mem applied %d times", sets)
	}
	if _, err := d.Source(report.SourceRaw); err == nil {
		t.Fatalf("unknown source should fail")
	}
}
