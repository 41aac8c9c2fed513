package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	kit "galaxy/internal/platform/testkit"
)

// Init is once per process, so every assertion on output lives here
func TestInitAndRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "INFO",
		Format:       "json",
		Writer:       &buf,
		Service:      "galaxy-api",
		StaticFields: map[string]string{"version": "v0.1.0"},
	})
	Init(Options{Level: "debug", Writer: &bytes.Buffer{}})

	Get().Debug().Msg("dropped below info")
	Named("http").Info().Msg("listening")
	ctx := WithRequest(context.Background(), "req-123")
	C(ctx).Warn().Msg("slow report")
	C(context.Background()).Info().Msg("no request")
	if WithRequest(ctx, "") != ctx {
		t.Fatalf("empty id should leave ctx untouched")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	var slow map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &slow); err != nil {
		t.Fatal(err)
	}
	if slow["request_id"] != "req-123" || slow["service"] != "galaxy-api" || slow["version"] != "v0.1.0" || slow["level"] != "warn" {
		t.Fatalf("request line = %v", slow)
	}
	kit.MustContain(t, lines[0], `"component":"http"`, `"message":"listening"`)
	if strings.Contains(lines[2], "request_id") {
		t.Fatalf("background logger should not carry a request id: %s", lines[2])
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "CONSOLE")
	t.Setenv("LOG_SERVICE", "galaxy-worker")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "console" || opt.Service != "galaxy-worker" || !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv = %+v", opt)
	}
}
