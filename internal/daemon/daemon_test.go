package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/clack-chat/clack/internal/api"
	"github.com/clack-chat/clack/internal/auth"
	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/lock"
	"github.com/clack-chat/clack/internal/status"
	"github.com/clack-chat/clack/internal/store"
)

func TestDaemonLifecycle(t *testing.T) {
	profileDir := t.TempDir()

	// Acquire lock.
	lk, err := lock.Acquire(profileDir)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = lk.Release() }()

	// Open store.
	db, err := store.Open(filepath.Join(profileDir, "clack.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}

	// Setup components.
	logger := zap.NewNop()
	b := bus.New()
	machine := status.NewMachine(b)
	_ = machine.Transition(status.Migrating)

	tokens, err := auth.NewTokens()
	if err != nil {
		t.Fatal(err)
	}
	h := api.NewHandler(db, tokens, b, machine, logger)

	srv, err := NewServer(Params{ProfileName: "test", ListenAddr: "127.0.0.1:0"}, logger, h)
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = srv.Start() }()
	defer srv.Stop(context.Background())

	_ = machine.Transition(status.Serving)
	time.Sleep(50 * time.Millisecond)

	base := "http://" + srv.Addr()

	// Health reflects the SERVING state.
	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
	if health.State != string(status.Serving) {
		t.Errorf("state = %q, want SERVING", health.State)
	}

	// A full register round trip through the running server.
	body, _ := json.Marshal(api.RegisterRequest{
		Username:        "alice",
		Password:        "secret",
		PasswordConfirm: "secret",
	})
	resp, err = http.Post(base+"/v1/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	var reg api.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	if reg.Token == "" {
		t.Fatal("register returned no token")
	}
	if _, err := tokens.Validate(reg.Token); err != nil {
		t.Errorf("minted token invalid: %v", err)
	}
}

func TestSecondDaemonRefusesHeldLock(t *testing.T) {
	profileDir := t.TempDir()

	lk, err := lock.Acquire(profileDir)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = lk.Release() }()

	if _, err := lock.Acquire(profileDir); err == nil {
		t.Fatal("second acquire succeeded while lock held")
	}
}
