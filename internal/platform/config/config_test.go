package config

import (
	"testing"
	"time"

	kit "galaxy/internal/platform/testkit"
)

func TestPrefixNests(t *testing.T) {
	t.Setenv("SERVICE_TM_MAX_CONNS", "4")
	c := New().Prefix("SERVICE_").Prefix("TM_")
	if got := c.MayInt("MAX_CONNS", 8); got != 4 {
		t.Fatalf("MayInt = %d", got)
	}
	if _, name := c.lookup("DBURL"); name != "SERVICE_TM_DBURL" {
		t.Fatalf("name = %q", name)
	}
}

func TestMayFallbacks(t *testing.T) {
	t.Setenv("CFG_TEST_TIMEOUT", "25s")
	t.Setenv("CFG_TEST_TIMEOUT_SECS", " 40 ")
	t.Setenv("CFG_TEST_BAD_TIMEOUT", "soon")
	t.Setenv("CFG_TEST_RATIO", "0.6")
	t.Setenv("CFG_TEST_BAD_RATIO", "most")
	t.Setenv("CFG_TEST_SWAGGER", "false")
	t.Setenv("CFG_TEST_BAD_SWAGGER", "nah")
	t.Setenv("CFG_TEST_PORT", " :9000 ")
	t.Setenv("CFG_TEST_BAD_CONNS", "eight")
	c := New().Prefix("CFG_TEST_")

	cases := []struct {
		name string
		got  any
		want any
	}{
		{"duration", c.MayDuration("TIMEOUT", time.Second), 25 * time.Second},
		{"bare seconds", c.MayDuration("TIMEOUT_SECS", time.Second), 40 * time.Second},
		{"bad duration", c.MayDuration("BAD_TIMEOUT", 25*time.Second), 25 * time.Second},
		{"unset duration", c.MayDuration("NOPE", 3*time.Second), 3 * time.Second},
		{"float", c.MayFloat64("RATIO", 0), 0.6},
		{"bad float", c.MayFloat64("BAD_RATIO", 0.5), 0.5},
		{"bool", c.MayBool("SWAGGER", true), false},
		{"bad bool", c.MayBool("BAD_SWAGGER", true), true},
		{"string trimmed", c.MayString("PORT", ":4000"), ":9000"},
		{"unset string", c.MayString("NOPE", ":4000"), ":4000"},
		{"bad int", c.MayInt("BAD_CONNS", 8), 8},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestMayDSN(t *testing.T) {
	c := New().Prefix("SERVICE_RAW_")
	if got := c.MayDSN("DBURL"); got != "" {
		t.Fatalf("unset should disable the source, got %q", got)
	}

	for _, ok := range []string{
		"postgres://galaxy:pw@db:5432/underpass?sslmode=disable",
		"postgresql://db/tm",
		"host=db dbname=raw user=galaxy",
	} {
		t.Setenv("SERVICE_RAW_DBURL", ok)
		if got := c.MayDSN("DBURL"); got != ok {
			t.Fatalf("MayDSN(%q) = %q", ok, got)
		}
	}

	for _, bad := range []string{"mysql://db/raw", "postgres:///raw", "postgres://%zz"} {
		t.Setenv("SERVICE_RAW_DBURL", bad)
		kit.MustPanic(t, func() { _ = c.MayDSN("DBURL") })
	}
}

func TestMayList(t *testing.T) {
	t.Setenv("CORE_API_CORS_ORIGINS", " https://tasks.hotosm.org, ,https://galaxy.hotosm.org ")
	c := New().Prefix("CORE_API_")
	got := c.MayList("CORS_ORIGINS")
	if len(got) != 2 || got[0] != "https://tasks.hotosm.org" || got[1] != "https://galaxy.hotosm.org" {
		t.Fatalf("MayList = %q", got)
	}
	if c.MayList("NOPE") != nil {
		t.Fatalf("unset list should be nil")
	}
}
