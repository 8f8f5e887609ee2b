package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/jaskpomo/internal/config"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal = "global"
	scopeTimer  = "timer"
)

const (
	actionQuit       Action = "quit"
	actionHelp       Action = "help"
	actionWork       Action = "work"
	actionShortBreak Action = "short_break"
	actionLongBreak  Action = "long_break"
	actionToggle     Action = "toggle"
	actionReset      Action = "reset"
	actionFocusNext  Action = "focus_next"
	actionFocusPrev  Action = "focus_prev"
	actionPress      Action = "press"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeTimer, actionToggle, []string{"space", "p"}, "start/pause")
	reg(scopeTimer, actionReset, []string{"r"}, "reset")
	reg(scopeTimer, actionWork, []string{"1", "w"}, "work")
	reg(scopeTimer, actionShortBreak, []string{"2", "s"}, "short break")
	reg(scopeTimer, actionLongBreak, []string{"3", "b"}, "long break")
	reg(scopeTimer, actionFocusNext, []string{"tab", "right", "l"}, "next")
	reg(scopeTimer, actionFocusPrev, []string{"shift+tab", "left", "h"}, "prev")
	reg(scopeTimer, actionPress, []string{"enter"}, "press")

	reg(scopeGlobal, actionHelp, []string{"?"}, "help")
	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 {
			continue
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves keyName in scope, falling back to the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		if b := r.lookupInScope(keyName, scopeGlobal); b != nil {
			return b
		}
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, helpBinding(b))
	}
	return out
}

// ShortHelp lists the bindings shown when the full help is collapsed.
func (r *KeyRegistry) ShortHelp() []key.Binding {
	want := []struct {
		scope  string
		action Action
	}{
		{scopeTimer, actionToggle},
		{scopeTimer, actionReset},
		{scopeTimer, actionWork},
		{scopeTimer, actionShortBreak},
		{scopeTimer, actionLongBreak},
		{scopeGlobal, actionHelp},
		{scopeGlobal, actionQuit},
	}
	out := make([]key.Binding, 0, len(want))
	for _, w := range want {
		for _, b := range r.BindingsForScope(w.scope) {
			if b.Action == w.action {
				out = append(out, helpBinding(b))
			}
		}
	}
	return out
}

// FullHelp lists every binding, timer scope first.
func (r *KeyRegistry) FullHelp() []key.Binding {
	return append(r.HelpBindings(scopeTimer), r.HelpBindings(scopeGlobal)...)
}

func helpBinding(b Binding) key.Binding {
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(strings.Join(b.Keys, "/"), b.Help))
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Uppercase and lowercase may bind different actions.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// ApplyOverrides rebinds actions from config. Every override must name an
// existing scope and action, and the result must be free of key conflicts.
func (r *KeyRegistry) ApplyOverrides(overrides []config.KeyOverride) error {
	if r == nil || len(overrides) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	for _, o := range overrides {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("shortcut override: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("shortcut override scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("shortcut override scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("shortcut override scope=%q action=%q: unknown scope", scope, action)
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("shortcut override scope=%q action=%q: unknown action in scope", scope, action)
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("shortcut override scope=%q action=%q: duplicated override entry", scope, action)
		}
		seenPair[p] = true
		target.Keys = keys
	}

	r.rebuildIndex()
	for scope, bindings := range r.bindingsByScope {
		seen := make(map[string]Action)
		for _, b := range bindings {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("shortcut override conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
	return nil
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}
