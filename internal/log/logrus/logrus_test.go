package logrus_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formalise/internal/log"
	loglogrus "github.com/goliatone/go-formalise/internal/log/logrus"
)

func TestLogrusCarriesValues(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.Out = &buf
	base.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})

	ctx := log.CtxWithValues(context.Background(), log.Kv{"request": "r1"})
	logger := loglogrus.NewLogrus(logrus.NewEntry(base)).
		WithValues(log.Kv{"svc": "server"}).
		WithCtxValues(ctx)
	logger.Infof("rendered %s", "progress")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	want := map[string]any{"level": "info", "msg": "rendered progress", "svc": "server", "request": "r1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("log entry mismatch (-want +got):\n%s", diff)
	}
}

func TestNoopDiscards(t *testing.T) {
	var logger log.Logger = log.Noop
	logger.WithValues(log.Kv{"a": 1}).Errorf("ignored %d", 1)
}
