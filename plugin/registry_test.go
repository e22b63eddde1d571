package plugin

import (
	"context"
	"errors"
	"testing"
)

// recordingPlugin implements a subset of hooks and records calls.
type recordingPlugin struct {
	name    string
	issued  int
	inits   int
	failure error
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) OnInit(_ context.Context, _ interface{}) error {
	p.inits++
	return p.failure
}

func (p *recordingPlugin) OnTicketIssued(_ context.Context, _ interface{}) error {
	p.issued++
	return p.failure
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	p := &recordingPlugin{name: "recorder"}

	if err := r.Register(p); err != nil {
		t.Fatalf("register: %v", err)
	}
	if r.Count() != 1 {
		t.Errorf("Count: got %d, want 1", r.Count())
	}
	if r.Get("recorder") == nil {
		t.Error("Get returned nil for registered plugin")
	}
	if r.Get("missing") != nil {
		t.Error("Get returned a plugin for an unknown name")
	}

	// Duplicate names are rejected.
	if err := r.Register(&recordingPlugin{name: "recorder"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
	if r.Count() != 1 {
		t.Errorf("Count after rejected duplicate: %d", r.Count())
	}
}

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	p := &recordingPlugin{name: "recorder"}
	if err := r.Register(p); err != nil {
		t.Fatalf("register: %v", err)
	}

	ctx := context.Background()
	r.EmitInit(ctx, nil)
	r.EmitTicketIssued(ctx, nil)
	r.EmitTicketIssued(ctx, nil)

	// Hooks the plugin does not implement must be a no-op, not a panic.
	r.EmitTicketUsed(ctx, nil)
	r.EmitShutdown(ctx)

	if p.inits != 1 {
		t.Errorf("OnInit calls: got %d, want 1", p.inits)
	}
	if p.issued != 2 {
		t.Errorf("OnTicketIssued calls: got %d, want 2", p.issued)
	}
}

func TestRegistryPluginFailureIsIsolated(t *testing.T) {
	r := NewRegistry()
	failing := &recordingPlugin{name: "failing", failure: errors.New("boom")}
	healthy := &recordingPlugin{name: "healthy"}

	if err := r.Register(failing); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(healthy); err != nil {
		t.Fatalf("register: %v", err)
	}

	// A failing plugin must not stop dispatch to the others.
	r.EmitTicketIssued(context.Background(), nil)

	if healthy.issued != 1 {
		t.Errorf("healthy plugin not called after failure: %d", healthy.issued)
	}
}

func TestRegistryInterfaceDiscovery(t *testing.T) {
	r := NewRegistry()
	names := r.getImplementedInterfaces(&recordingPlugin{name: "recorder"})

	want := map[string]bool{"OnInit": true, "OnTicketIssued": true}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected interface reported: %s", n)
		}
		delete(want, n)
	}
	for n := range want {
		t.Errorf("interface not reported: %s", n)
	}
}
