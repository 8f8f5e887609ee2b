package tui

import (
	"strings"
	"testing"

	"github.com/jask/jaskpomo/internal/config"
)

func TestKeyRegistryLookupByScope(t *testing.T) {
	r := NewKeyRegistry()

	reset := r.Lookup("r", scopeTimer)
	if reset == nil {
		t.Fatal("expected reset binding in timer scope")
	}
	if reset.Action != actionReset {
		t.Fatalf("reset action = %q, want %q", reset.Action, actionReset)
	}

	if got := r.Lookup("r", scopeGlobal); got != nil {
		t.Fatalf("did not expect reset binding in global scope, got %q", got.Action)
	}

	quit := r.Lookup("q", scopeTimer)
	if quit == nil {
		t.Fatal("expected quit binding to be available in timer scope")
	}
	if quit.Action != actionQuit {
		t.Fatalf("quit action = %q, want %q", quit.Action, actionQuit)
	}
}

func TestKeyRegistrySpaceNormalization(t *testing.T) {
	r := NewKeyRegistry()
	for _, k := range []string{" ", "space", "Spacebar"} {
		b := r.Lookup(k, scopeTimer)
		if b == nil || b.Action != actionToggle {
			t.Fatalf("Lookup(%q) = %v, want toggle", k, b)
		}
	}
}

func TestKeyRegistryNoDuplicateInSameScope(t *testing.T) {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	r.Register(Binding{Action: actionReset, Keys: []string{"x"}, Help: "first", Scopes: []string{"scope_a"}})
	r.Register(Binding{Action: actionToggle, Keys: []string{"x"}, Help: "duplicate", Scopes: []string{"scope_a"}})
	r.Register(Binding{Action: actionToggle, Keys: []string{"x"}, Help: "different scope", Scopes: []string{"scope_b"}})

	a := r.BindingsForScope("scope_a")
	if len(a) != 1 {
		t.Fatalf("scope_a bindings = %d, want 1", len(a))
	}
	if a[0].Action != actionReset {
		t.Fatalf("scope_a action = %q, want %q", a[0].Action, actionReset)
	}

	b := r.BindingsForScope("scope_b")
	if len(b) != 1 {
		t.Fatalf("scope_b bindings = %d, want 1", len(b))
	}
	if b[0].Action != actionToggle {
		t.Fatalf("scope_b action = %q, want %q", b[0].Action, actionToggle)
	}
}

func TestKeyRegistryShortHelp(t *testing.T) {
	r := NewKeyRegistry()
	var descs []string
	for _, b := range r.ShortHelp() {
		descs = append(descs, b.Help().Desc)
	}
	got := strings.Join(descs, ",")
	want := "start/pause,reset,work,short break,long break,help,quit"
	if got != want {
		t.Fatalf("short help = %q, want %q", got, want)
	}
}

func TestApplyOverrides(t *testing.T) {
	r := NewKeyRegistry()
	err := r.ApplyOverrides([]config.KeyOverride{
		{Scope: "timer", Action: "reset", Keys: []string{"x", "Backspace"}},
	})
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if got := r.Lookup("r", scopeTimer); got != nil {
		t.Fatalf("old key still bound to %q", got.Action)
	}
	for _, k := range []string{"x", "backspace"} {
		b := r.Lookup(k, scopeTimer)
		if b == nil || b.Action != actionReset {
			t.Fatalf("Lookup(%q) = %v, want reset", k, b)
		}
	}
	var got []string
	for _, b := range r.BindingsForScope(scopeTimer) {
		if b.Action == actionReset {
			got = b.Keys
		}
	}
	if strings.Join(got, ",") != "x,backspace" {
		t.Fatalf("reset keys = %v, want [x backspace]", got)
	}
}

func TestApplyOverridesErrors(t *testing.T) {
	tests := []struct {
		name string
		in   []config.KeyOverride
		want string
	}{
		{"unknown scope", []config.KeyOverride{{Scope: "menu", Action: "reset", Keys: []string{"x"}}}, "unknown scope"},
		{"unknown action", []config.KeyOverride{{Scope: "timer", Action: "snooze", Keys: []string{"x"}}}, "unknown action"},
		{"no keys", []config.KeyOverride{{Scope: "timer", Action: "reset"}}, "keys are required"},
		{"duplicate", []config.KeyOverride{
			{Scope: "timer", Action: "reset", Keys: []string{"x"}},
			{Scope: "timer", Action: "reset", Keys: []string{"y"}},
		}, "duplicated"},
		{"conflict", []config.KeyOverride{{Scope: "timer", Action: "reset", Keys: []string{"p"}}}, "conflict"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewKeyRegistry().ApplyOverrides(tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("ApplyOverrides err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestOverrideDrivesUpdate(t *testing.T) {
	keys := NewKeyRegistry()
	if err := keys.ApplyOverrides([]config.KeyOverride{{Scope: "timer", Action: "short_break", Keys: []string{"x"}}}); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	a := New(Options{Keys: keys})
	a.Update(keyMsg("x"))
	if a.State().Remaining() != 300 {
		t.Fatalf("remaining = %d, want 300", a.State().Remaining())
	}
}
