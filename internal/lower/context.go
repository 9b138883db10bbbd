// Package lower implements C7: statement-to-microstatement lowering
// (spec §4.4). It walks a function body's AST statements and produces a
// flat []microstatement.Microstatement, resolving every name against a
// scope.Scope as it goes. Grounded on the teacher's internal/elaborate
// package (a desugar-then-normalize pipeline threading a mutable
// environment through statement and expression walks) generalized from
// JS-AST-to-core-AST desugaring to AST-to-microstatement lowering.
package lower

import (
	"fmt"

	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/microstatement"
	"github.com/alantech/alan/internal/scope"
)

// Context threads the lexical scope, the local-variable table (names
// bound by Assignment/Arg microstatements visible from here down), and
// the set of generic parameter names in scope for type resolution
// through one lowering pass. It also accumulates anonymous microstatements
// hoisted out of sub-expressions (e.g. a constant reference lowered
// inline per spec §4.4's variable-resolution rule).
type Context struct {
	Scope    *scope.Scope
	Generics map[string]bool
	Locals   map[string]microstatement.Microstatement

	nextID *uint64
}

// NewContext starts a fresh top-level lowering context for sc.
func NewContext(sc *scope.Scope, generics map[string]bool) *Context {
	id := uint64(0)
	if generics == nil {
		generics = map[string]bool{}
	}
	return &Context{
		Scope:    sc,
		Generics: generics,
		Locals:   map[string]microstatement.Microstatement{},
		nextID:   &id,
	}
}

// Child opens a nested lexical scope (a closure body) that sees this
// context's locals but can shadow them without mutating the parent.
func (c *Context) Child(sc *scope.Scope) *Context {
	locals := make(map[string]microstatement.Microstatement, len(c.Locals))
	for k, v := range c.Locals {
		locals[k] = v
	}
	return &Context{
		Scope:    sc,
		Generics: c.Generics,
		Locals:   locals,
		nextID:   c.nextID,
	}
}

func (c *Context) id() uint64 {
	*c.nextID++
	return *c.nextID
}

func (c *Context) node() microstatement.Node {
	return microstatement.Node{NodeID: c.id()}
}

func (c *Context) anonName() string {
	return fmt.Sprintf("__anon%d", c.id())
}

func emptyTuple() ctype.CType { return ctype.Void{} }

// scopeChild opens a fresh child scope of ctx.Scope and wraps it in a
// lowering Context that still sees ctx's locals.
func scopeChild(ctx *Context) *Context {
	return ctx.Child(scope.New(ctx.Scope))
}
