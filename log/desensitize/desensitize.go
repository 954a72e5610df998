package desensitize

import (
	"slices"
	"sync"
)

// Hook applies an ordered set of rules to log output
type Hook struct {
	mu    sync.RWMutex
	rules []Rule
}

func NewHook() *Hook {
	return &Hook{}
}

// AddRule appends rule, replacing any rule with the same name
func (h *Hook) AddRule(rule Rule) {
	if rule == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.rules = slices.DeleteFunc(h.rules, func(r Rule) bool { return r.Name() == rule.Name() })
	h.rules = append(h.rules, rule)
}

// AddBuiltin adds several rules at once
func (h *Hook) AddBuiltin(rules ...Rule) {
	for _, r := range rules {
		h.AddRule(r)
	}
}

// RemoveRule drops the named rule and reports whether it existed
func (h *Hook) RemoveRule(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.rules)
	h.rules = slices.DeleteFunc(h.rules, func(r Rule) bool { return r.Name() == name })
	return len(h.rules) != n
}

// RuleCount returns the number of registered rules
func (h *Hook) RuleCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rules)
}

// Desensitize runs every enabled rule over s in registration order
func (h *Hook) Desensitize(s string) string {
	if s == "" {
		return s
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, r := range h.rules {
		if r.Enabled() {
			s = r.Process(s)
		}
	}
	return s
}
