package logging

import (
	"testing"

	"github.com/radiy-net/radiy-client/pkg/config"
)

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(&config.LoggingConfig{Level: "INFO", Format: "json"})
	if err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger not set")
	}
}

func TestInitLoggerText(t *testing.T) {
	err := InitLogger(&config.LoggingConfig{Level: "DEBUG", Format: "text"})
	if err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}
}

func TestInitLoggerBadLevelFallsBack(t *testing.T) {
	err := InitLogger(&config.LoggingConfig{Level: "NOISY", Format: "json"})
	if err != nil {
		t.Fatalf("InitLogger must tolerate unknown levels: %v", err)
	}
}

func TestGetLoggerNeverNil(t *testing.T) {
	Logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil")
	}
}

func TestWithComponent(t *testing.T) {
	if WithComponent("test") == nil {
		t.Fatal("WithComponent returned nil")
	}
}
