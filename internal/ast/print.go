package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of an AST node,
// used for golden snapshot testing. Position info is omitted so
// snapshots are stable across source reformatting.
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// simplify converts AST nodes into plain JSON-serializable maps.
func simplify(node interface{}) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		m := map[string]interface{}{"type": "File", "path": "test://unit"}
		if len(n.Imports) > 0 {
			m["imports"] = simplifySlice(n.Imports)
		}
		if len(n.Types) > 0 {
			m["types"] = simplifySlice(n.Types)
		}
		if len(n.Functions) > 0 {
			m["functions"] = simplifySlice(n.Functions)
		}
		if len(n.Consts) > 0 {
			m["consts"] = simplifySlice(n.Consts)
		}
		if len(n.Exports) > 0 {
			m["exports"] = simplifySlice(n.Exports)
		}
		return m

	case *ImportDecl:
		m := map[string]interface{}{"type": "ImportDecl", "path": n.Path}
		if len(n.Symbols) > 0 {
			m["symbols"] = n.Symbols
		}
		return m

	case *TypeDecl:
		m := map[string]interface{}{"type": "TypeDecl", "name": n.Name, "body": n.Body.String()}
		if n.Condition != nil {
			m["condition"] = n.Condition.String()
		}
		if len(n.Generics) > 0 {
			m["generics"] = n.Generics
		}
		return m

	case *ConstDecl:
		m := map[string]interface{}{"type": "ConstDecl", "name": n.Name, "value": simplify(n.Value)}
		if n.Condition != nil {
			m["condition"] = n.Condition.String()
		}
		return m

	case *FuncDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		m := map[string]interface{}{"type": "FuncDecl", "name": n.Name, "params": params}
		if len(n.Generics) > 0 {
			m["generics"] = n.Generics
		}
		if n.ReturnType != nil {
			m["returnType"] = n.ReturnType.String()
		}
		if len(n.Body) > 0 {
			stmts := make([]interface{}, len(n.Body))
			for i, s := range n.Body {
				stmts[i] = simplify(s)
			}
			m["body"] = stmts
		}
		return m

	case *ExportDecl:
		return map[string]interface{}{"type": "ExportDecl", "inner": simplify(n.Inner)}

	case *Declaration:
		return map[string]interface{}{"type": "Declaration", "mutable": n.Mutable, "name": n.Name, "value": simplify(n.Value)}

	case *Assignment:
		return map[string]interface{}{"type": "Assignment", "name": n.Name, "value": simplify(n.Value)}

	case *ArrayAssignment:
		return map[string]interface{}{"type": "ArrayAssignment", "array": simplify(n.Array), "index": simplify(n.Index), "value": simplify(n.Value)}

	case *Returns:
		if n.Value == nil {
			return map[string]interface{}{"type": "Returns"}
		}
		return map[string]interface{}{"type": "Returns", "value": simplify(n.Value)}

	case *Conditional:
		m := map[string]interface{}{"type": "Conditional", "cond": simplify(n.Cond)}
		m["then"] = simplifyStmts(n.Then)
		if n.Else != nil {
			m["else"] = simplifyStmts(n.Else)
		}
		return m

	case *AssignableStatement:
		return simplify(n.Value)

	case *Var:
		return map[string]interface{}{"type": "Var", "name": n.Name}

	case *Constant:
		return map[string]interface{}{"type": "Constant", "value": n.Value}

	case *Group:
		return map[string]interface{}{"type": "Group", "inner": simplify(n.Inner)}

	case *ArrayLiteral:
		return map[string]interface{}{"type": "ArrayLiteral", "elements": simplifyAssignables(n.Elements)}

	case *ObjectLiteral:
		return map[string]interface{}{"type": "ObjectLiteral", "typeName": n.TypeName}

	case *FunctionLiteral:
		return map[string]interface{}{"type": "FunctionLiteral"}

	case *FunctionCall:
		return map[string]interface{}{"type": "FunctionCall", "func": simplify(n.Func), "args": simplifyAssignables(n.Args)}

	case *TypeCall:
		return map[string]interface{}{"type": "TypeCall", "ctype": n.Type.String(), "args": simplifyAssignables(n.Args)}

	case *ConstantAccessor:
		return map[string]interface{}{"type": "ConstantAccessor", "base": simplify(n.Base), "name": n.Name}

	case *ArrayAccessor:
		return map[string]interface{}{"type": "ArrayAccessor", "base": simplify(n.Base), "index": simplify(n.Index)}

	case *WithOperators:
		terms := simplifyAssignables(n.Terms)
		return map[string]interface{}{"type": "WithOperators", "terms": terms, "operators": n.Operators}

	default:
		return fmt.Sprintf("%T(%s)", node, node)
	}
}

func simplifySlice[T Node](nodes []T) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = simplify(n)
	}
	return out
}

func simplifyAssignables(nodes []Assignable) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = simplify(n)
	}
	return out
}

func simplifyStmts(nodes []Statement) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = simplify(n)
	}
	return out
}
