package logger

import "testing"

func TestNewNop(t *testing.T) {
	log := NewNop()

	log.Debug("debug", String("k", "v"))
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.Fatal("fatal does not exit")

	if got := log.With(String("k", "v")); got == nil {
		t.Fatal("expected With to return a logger")
	}
	if err := log.Sync(); err != nil {
		t.Fatalf("unexpected sync error: %v", err)
	}
}
