package capturelog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapterWritesDebugMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)
	log.Debug("capture", "built kernel table", map[string]any{"count": 256})
	if buf.Len() == 0 {
		t.Fatal("expected a debug line to be written")
	}
	if !bytes.Contains(buf.Bytes(), []byte("built kernel table")) {
		t.Fatalf("log output missing message: %s", buf.String())
	}
}

func TestZerologAdapterSuppressesBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)
	log.Debug("capture", "should not appear", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output below the configured level, got: %s", buf.String())
	}
}

func TestZerologAdapterLogsError(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.ErrorLevel)
	log.Error("capture", errors.New("device failure"), map[string]any{"stage": "blurDiv"})
	if !bytes.Contains(buf.Bytes(), []byte("device failure")) {
		t.Fatalf("log output missing error: %s", buf.String())
	}
}

func TestNopLoggerDiscardsEverything(t *testing.T) {
	var log NopLogger
	log.Debug("capture", "noop", nil)
	log.Warn("capture", "noop", nil)
	log.Error("capture", errors.New("noop"), nil)
}
