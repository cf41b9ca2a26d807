package state

import (
	"sort"
	"strings"

	"github.com/colisc/colis/internal/ast"
)

// Env is an immutable mapping from identifier to string value with a
// per-lookup default, updated functionally (spec.md §2.2).
type Env struct {
	byIdent map[ast.Ident]string
	def     string
}

// NewEnv returns an empty environment whose lookups default to def.
func NewEnv(def string) Env {
	return Env{def: def}
}

// Get looks up id, returning the environment's default if unset.
func (e Env) Get(id ast.Ident) string {
	if e.byIdent == nil {
		return e.def
	}
	if v, ok := e.byIdent[id]; ok {
		return v
	}
	return e.def
}

// Set returns a new Env with id bound to v, leaving e unmodified.
func (e Env) Set(id ast.Ident, v string) Env {
	next := make(map[ast.Ident]string, len(e.byIdent)+1)
	for k, val := range e.byIdent {
		next[k] = val
	}
	next[id] = v
	return Env{byIdent: next, def: e.def}
}

// Key returns a deterministic hash key for structural-equality set
// membership.
func (e Env) Key() string {
	keys := make([]string, 0, len(e.byIdent))
	for k := range e.byIdent {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(e.byIdent[ast.Ident(k)])
		b.WriteByte(';')
	}
	return b.String()
}
