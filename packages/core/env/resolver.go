package env

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// Resolver expands {{name}} and {{$ENV}} placeholders with thread-safe access
// to its variables. Scoped variables, set per source document, shadow plain
// ones.
type Resolver struct {
	mu        sync.RWMutex
	variables map[string]any
	scoped    map[string]any
	warnFunc  WarnFunc
}

func NewResolver() *Resolver {
	return &Resolver{
		variables: make(map[string]any),
		scoped:    make(map[string]any),
	}
}

// SetWarnFunc sets a function to be called when warnings occur (e.g., unresolved variables)
func (r *Resolver) SetWarnFunc(fn WarnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnFunc = fn
}

func (r *Resolver) warn(format string, args ...any) {
	r.mu.RLock()
	fn := r.warnFunc
	r.mu.RUnlock()
	if fn != nil {
		fn(format, args...)
	}
}

func (r *Resolver) SetVariables(vars map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range vars {
		r.variables[k] = v
	}
}

func (r *Resolver) SetVariable(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables[name] = value
}

// SetScoped makes value available both as {{scope.name}} and {{name}}.
func (r *Resolver) SetScoped(scope, name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scoped[scope+"."+name] = value
	r.scoped[name] = value
}

func (r *Resolver) lookup(s segment) (string, bool) {
	if s.env {
		if val := os.Getenv(s.ref); val != "" {
			return val, true
		}
		return "", false
	}
	if v, ok := r.GetVariable(s.ref); ok {
		return fmt.Sprintf("%v", v), true
	}
	return "", false
}

// Resolve replaces every placeholder it can resolve. Unresolved placeholders
// are kept verbatim and reported to the warn func.
func (r *Resolver) Resolve(input string) string {
	segments := parseTemplate(input)

	var b strings.Builder
	b.Grow(len(input))
	for _, s := range segments {
		if !s.isRef() {
			b.WriteString(s.raw.String())
			continue
		}
		if val, ok := r.lookup(s); ok {
			b.WriteString(val)
			continue
		}
		if s.env {
			r.warn("unresolved environment variable: $%s", s.ref)
		} else {
			r.warn("unresolved variable: %s", s.ref)
		}
		b.WriteString(s.raw.String())
	}
	return b.String()
}

// GetUnresolvedVariables lists the unresolved references in input, in order of
// first appearance. Environment references keep their $ prefix. It returns nil
// when everything resolves.
func (r *Resolver) GetUnresolvedVariables(input string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range parseTemplate(input) {
		if !s.isRef() {
			continue
		}
		if _, ok := r.lookup(s); ok {
			continue
		}
		if name := s.name(); !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ResolveDocument returns a copy of doc with placeholders in its values
// expanded. Each value sees the assignments above it, scoped by scope when it
// is not empty. Single-quoted values are left as written.
func (r *Resolver) ResolveDocument(scope string, doc *Document) *Document {
	local := r.Clone()
	out := &Document{
		File:        doc.File,
		Source:      doc.Source,
		Assignments: make([]Assignment, len(doc.Assignments)),
		Skipped:     doc.Skipped,
	}
	for i, a := range doc.Assignments {
		if !a.SingleQuoted {
			a.Value = local.Resolve(a.Value)
		}
		out.Assignments[i] = a
		if scope != "" {
			local.SetScoped(scope, a.Key, a.Value)
		} else {
			local.SetVariable(a.Key, a.Value)
		}
	}
	return out
}

func (r *Resolver) GetVariable(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.scoped[name]; ok {
		return v, true
	}
	if v, ok := r.variables[name]; ok {
		return v, true
	}
	return nil, false
}

func (r *Resolver) Clone() *Resolver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewResolver()
	for k, v := range r.variables {
		clone.variables[k] = v
	}
	for k, v := range r.scoped {
		clone.scoped[k] = v
	}
	clone.warnFunc = r.warnFunc
	return clone
}
