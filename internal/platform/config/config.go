// Package config reads service settings from environment variables.
// Source settings live under SERVICE_UNDERPASS_, SERVICE_TM_ and SERVICE_RAW_,
// api settings under CORE_API_.
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"galaxy/internal/platform/logger"
)

// Conf is a namespaced view over the environment
type Conf struct{ prefix string }

// New returns the unprefixed root
func New() Conf { return Conf{} }

// Prefix scopes c further, e.g. root.Prefix("SERVICE_TM_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) (val, name string) {
	name = c.prefix + key
	return strings.TrimSpace(os.Getenv(name)), name
}

// may parses key, warning and falling back to def on garbage
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, name := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", s).Interface("default", def).Msg("unparseable env, using default")
		return def
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

// MayInt returns an int or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayFloat64 returns a float or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool accepts anything strconv.ParseBool does
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration accepts Go durations ("25s") and bare seconds ("25")
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, func(s string) (time.Duration, error) {
		if n, err := strconv.Atoi(s); err == nil {
			return time.Duration(n) * time.Second, nil
		}
		return time.ParseDuration(s)
	})
}

// MayList splits a comma separated value, dropping blanks; unset gives nil
func (c Conf) MayList(key string) []string {
	s, _ := c.lookup(key)
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MayDSN returns a postgres connection string or "" when unset.
// Keyword/value strings ("host=... dbname=...") pass through untouched.
// A url with the wrong scheme or no host panics so a typo cannot quietly
// disable a source. The value is never logged.
func (c Conf) MayDSN(key string) string {
	s, name := c.lookup(key)
	if s == "" || !strings.Contains(s, "://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") || u.Host == "" {
		logger.Get().Panic().Str("key", name).Msg("invalid postgres url")
	}
	return s
}
