// Package optable implements the prefix/infix/postfix operator tables
// (spec §4.2, C3): data-driven precedence maps and the confluent rewrite
// loop that turns a flat token/operator chunk into a named function call
// tree. The teacher parses operators with a Pratt parser built into its
// grammar, so this package has no direct teacher analog; its shape is
// ported from the original compiler's data-driven operator-mapping
// design instead.
package optable

import "github.com/alantech/alan/internal/errcode"

// Fix is the fixity an operator mapping is registered under.
type Fix int

const (
	Prefix Fix = iota
	Infix
	Postfix
)

func (f Fix) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	default:
		return "unknown"
	}
}

// Mapping is one operator-to-function binding: the Level is its
// precedence (-128..127, higher binds tighter), FunctionName is the
// function the rewriter calls, OperatorName is the surface symbol.
type Mapping struct {
	Fix          Fix
	Level        int8
	FunctionName string
	OperatorName string
}

// key namespaces an operator symbol by fixity, mirroring the teacher's
// "prefix<name>"/"infix<name>"/"postfix<name>" export-key convention so
// the same symbol can be both prefix and infix without colliding.
func key(fix Fix, operatorName string) string {
	return fix.String() + operatorName
}

// Table holds one fixity-namespaced operator map. A Scope (C4) embeds two
// Tables: one for term operators, one for type operators.
type Table struct {
	mappings map[string]Mapping
}

// NewTable returns an empty operator table.
func NewTable() *Table {
	return &Table{mappings: map[string]Mapping{}}
}

// Register adds or overwrites the mapping for (fix, operatorName).
func (t *Table) Register(m Mapping) {
	t.mappings[key(m.Fix, m.OperatorName)] = m
}

// Lookup finds the mapping registered for a symbol under a given fixity.
func (t *Table) Lookup(fix Fix, operatorName string) (Mapping, bool) {
	m, ok := t.mappings[key(fix, operatorName)]
	return m, ok
}

// Merge copies every entry of other into t, overwriting on key collision
// (last write wins — the same discipline the Scope merge uses for types).
func (t *Table) Merge(other *Table) {
	for k, v := range other.mappings {
		t.mappings[k] = v
	}
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	out := NewTable()
	for k, v := range t.mappings {
		out.mappings[k] = v
	}
	return out
}

// Token is one element of the flat chunk the rewriter consumes: either an
// operand (Operand != nil) or a bare operator symbol (Operand == nil,
// Symbol set). Operand is left generic (any) so this package stays
// independent of the ast/ctype node shapes the lowering and
// type-resolution callers plug in.
type Token struct {
	Operand any
	Symbol  string
}

// CallNode is the rewritten output: a named call of FunctionName applied
// to Args, where each Arg is either another *CallNode or an original
// operand value.
type CallNode struct {
	FunctionName string
	Args         []any
}

// Rewrite repeatedly finds the highest-precedence operator in tokens that
// is "applicable" — a prefix needs an operand to its right and none to its
// left, a postfix an operand to its left and none to its right, an infix
// operands on both sides — replaces the operator and its
// operand(s) with a CallNode, and loops until one token remains (spec
// §4.2, §9 confluence invariant). It returns that final operand, which is
// either the original lone Token.Operand or a *CallNode tree.
func Rewrite(tokens []Token, table *Table) (any, error) {
	toks := append([]Token(nil), tokens...)
	for len(toks) > 1 {
		idx, m, found := highestPrecedenceApplicable(toks, table)
		if !found {
			return nil, errcode.WrapReport(errcode.New(errcode.SCO002, "scope", "no applicable operator found while rewriting expression"))
		}
		rewritten, newIdx, err := apply(toks, idx, m)
		if err != nil {
			return nil, err
		}
		toks = rewritten
		_ = newIdx
	}
	if len(toks) == 0 {
		return nil, errcode.WrapReport(errcode.New(errcode.SCO002, "scope", "empty expression has no operands"))
	}
	return toks[0].Operand, nil
}

func highestPrecedenceApplicable(toks []Token, table *Table) (int, Mapping, bool) {
	bestIdx := -1
	var best Mapping
	haveBest := false
	for i, tok := range toks {
		if tok.Operand != nil {
			continue
		}
		for _, fix := range []Fix{Prefix, Infix, Postfix} {
			m, ok := table.Lookup(fix, tok.Symbol)
			if !ok {
				continue
			}
			if !applicable(toks, i, fix) {
				continue
			}
			if !haveBest || m.Level > best.Level {
				best = m
				bestIdx = i
				haveBest = true
			}
		}
	}
	return bestIdx, best, haveBest
}

func applicable(toks []Token, i int, fix Fix) bool {
	switch fix {
	case Prefix:
		return i+1 < len(toks) && toks[i+1].Operand != nil && (i == 0 || toks[i-1].Operand == nil)
	case Postfix:
		return i-1 >= 0 && toks[i-1].Operand != nil && (i+1 == len(toks) || toks[i+1].Operand == nil)
	case Infix:
		return i-1 >= 0 && i+1 < len(toks) && toks[i-1].Operand != nil && toks[i+1].Operand != nil
	default:
		return false
	}
}

func apply(toks []Token, idx int, m Mapping) ([]Token, int, error) {
	out := append([]Token(nil), toks[:idx]...)
	switch m.Fix {
	case Prefix:
		call := &CallNode{FunctionName: m.FunctionName, Args: []any{toks[idx+1].Operand}}
		out = append(out, Token{Operand: call})
		out = append(out, toks[idx+2:]...)
	case Postfix:
		call := &CallNode{FunctionName: m.FunctionName, Args: []any{toks[idx-1].Operand}}
		out = out[:len(out)-1]
		out = append(out, Token{Operand: call})
		out = append(out, toks[idx+1:]...)
	case Infix:
		call := &CallNode{FunctionName: m.FunctionName, Args: []any{toks[idx-1].Operand, toks[idx+1].Operand}}
		out = out[:len(out)-1]
		out = append(out, Token{Operand: call})
		out = append(out, toks[idx+2:]...)
	}
	return out, idx, nil
}
