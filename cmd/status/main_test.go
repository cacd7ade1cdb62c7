package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchDecodesHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer ts.Close()

	client := &http.Client{Timeout: time.Second}

	var health healthResponse
	if err := fetch(client, ts.URL+"/api/health", &health); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("expected status healthy, got %q", health.Status)
	}
}

func TestFetchDecodesStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"connections": 3, "timestamp": "2025-01-01T00:00:00Z"}`))
	}))
	defer ts.Close()

	client := &http.Client{Timeout: time.Second}

	var status statusResponse
	if err := fetch(client, ts.URL+"/api/status", &status); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if status.Connections != 3 {
		t.Errorf("expected 3 connections, got %d", status.Connections)
	}
	if status.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := &http.Client{Timeout: time.Second}

	var health healthResponse
	if err := fetch(client, ts.URL, &health); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchServerUnreachable(t *testing.T) {
	client := &http.Client{Timeout: 100 * time.Millisecond}

	var health healthResponse
	if err := fetch(client, "http://127.0.0.1:1/api/health", &health); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
