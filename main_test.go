package main

import (
	"testing"

	"github.com/karimJD/ws-backend/config"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedAppName := "Robot Sorting Relay Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestFlagDefaults(t *testing.T) {
	// Port and host default to zero values; the settings file supplies them.
	if *settingsPath == "" {
		t.Error("Settings path should have a default value")
	}
}

func TestBuildStack(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Stack construction panicked: %v", r)
		}
	}()

	r, apiServer := buildStack(config.Default())
	if r == nil {
		t.Fatal("Expected relay to be initialized")
	}
	if apiServer == nil {
		t.Fatal("Expected API server to be initialized")
	}
	if r.Count() != 0 {
		t.Errorf("Expected no clients on a fresh relay, got %d", r.Count())
	}
}
