// Package errcode provides centralized error code definitions for the
// core. Every diagnostic the core raises (spec §7) carries one of
// these codes so tooling can classify failures without parsing
// messages.
package errcode

// Error code constants organized by phase.
const (
	// ============================================================================
	// Parser errors (PAR###) — surfaced unchanged from the external parser
	// ============================================================================

	// PAR001 indicates the external parser reported a syntax error.
	PAR001 = "PAR001"

	// ============================================================================
	// Type algebra errors (TYP###, C2/C6)
	// ============================================================================

	// TYP001 indicates division by zero in compile-time arithmetic.
	TYP001 = "TYP001"
	// TYP002 indicates a non-finite float result from compile-time arithmetic.
	TYP002 = "TYP002"
	// TYP003 indicates a negative Buffer size.
	TYP003 = "TYP003"
	// TYP004 indicates Len was applied to an Array (dynamic length).
	TYP004 = "TYP004"
	// TYP005 indicates Size was applied to a function or open generic type.
	TYP005 = "TYP005"
	// TYP006 indicates an invalid FileStr path or unreadable file.
	TYP006 = "TYP006"
	// TYP007 indicates a Fail sentinel was referenced by a live code path.
	TYP007 = "TYP007"
	// TYP008 indicates an invalid Prop access (bad key, or base not indexable).
	TYP008 = "TYP008"
	// TYP009 indicates a module Import failed to load.
	TYP009 = "TYP009"
	// TYP010 indicates a conditionally-skipped declaration's Fail sentinel was referenced.
	TYP010 = "TYP010"
	// TYP011 indicates an arithmetic/logical/comparison operator was applied to literals of an invalid or mismatched kind.
	TYP011 = "TYP011"

	// ============================================================================
	// Scope / name resolution errors (SCO###, C4)
	// ============================================================================

	// SCO001 indicates an identifier was not found after walking the scope chain.
	SCO001 = "SCO001"
	// SCO002 indicates an operator symbol has no registered mapping.
	SCO002 = "SCO002"
	// SCO003 indicates a type-operator symbol has no registered mapping.
	SCO003 = "SCO003"
	// SCO004 indicates an import referenced a name the target module does not export.
	SCO004 = "SCO004"

	// ============================================================================
	// Overload resolution errors (OVL###, C4/C7)
	// ============================================================================

	// OVL001 indicates no function overload matched the call signature.
	OVL001 = "OVL001"
	// OVL002 indicates a declared return type did not match the actual lowered type.
	OVL002 = "OVL002"
	// OVL003 indicates a non-generic function's return type remained Infer.
	OVL003 = "OVL003"

	// ============================================================================
	// Generic inference / specialization errors (GEN###, C4.4.1/C8)
	// ============================================================================

	// GEN001 indicates generic parameter inference failed for a call.
	GEN001 = "GEN001"
	// GEN002 indicates two observations bound to the same generic parameter were incompatible.
	GEN002 = "GEN002"

	// ============================================================================
	// Lowering errors (LOW###, C7)
	// ============================================================================

	// LOW001 indicates an empty array literal (N must be >= 1).
	LOW001 = "LOW001"
	// LOW002 indicates an expression chunk did not match any recognized shape.
	LOW002 = "LOW002"
	// LOW003 indicates a closure's declared return type did not match its inferred body type.
	LOW003 = "LOW003"
	// LOW004 indicates an assignment targeted a binding declared with const.
	LOW004 = "LOW004"

	// ============================================================================
	// Loader errors (LDR###, §6.4)
	// ============================================================================

	// LDR001 indicates the loader callback returned an error for a module path.
	LDR001 = "LDR001"
	// LDR002 indicates a circular import was detected.
	LDR002 = "LDR002"

	// ============================================================================
	// Configuration errors (CFG###)
	// ============================================================================

	// CFG001 indicates an invalid or unreadable config file.
	CFG001 = "CFG001"
	// CFG002 indicates an unknown target backend tag.
	CFG002 = "CFG002"
)

// ErrorInfo provides structured information about an error code.
type ErrorInfo struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps error codes to their information.
var Registry = map[string]ErrorInfo{
	PAR001: {PAR001, "parser", "syntax", "Parse error"},

	TYP001: {TYP001, "typealgebra", "arithmetic", "Division by zero"},
	TYP002: {TYP002, "typealgebra", "arithmetic", "Non-finite float result"},
	TYP003: {TYP003, "typealgebra", "buffer", "Negative buffer size"},
	TYP004: {TYP004, "typealgebra", "len", "Len of dynamic-length Array"},
	TYP005: {TYP005, "typealgebra", "size", "Size of function or open generic"},
	TYP006: {TYP006, "typealgebra", "filestr", "Invalid FileStr path"},
	TYP007: {TYP007, "typealgebra", "fail", "Fail sentinel referenced"},
	TYP008: {TYP008, "typealgebra", "prop", "Invalid Prop access"},
	TYP009: {TYP009, "typealgebra", "import", "Import failed to load"},
	TYP010: {TYP010, "typealgebra", "condcompile", "Conditionally-skipped declaration referenced"},
	TYP011: {TYP011, "typealgebra", "arithmetic", "Invalid literal operation"},

	SCO001: {SCO001, "scope", "name", "Name not found"},
	SCO002: {SCO002, "scope", "operator", "Operator not found"},
	SCO003: {SCO003, "scope", "operator", "Type operator not found"},
	SCO004: {SCO004, "scope", "import", "Import of non-existent export"},

	OVL001: {OVL001, "overload", "dispatch", "No matching overload"},
	OVL002: {OVL002, "overload", "returntype", "Return type mismatch"},
	OVL003: {OVL003, "overload", "returntype", "Missing return type"},

	GEN001: {GEN001, "generics", "inference", "Generic inference failed"},
	GEN002: {GEN002, "generics", "inference", "Incompatible generic binding"},

	LOW001: {LOW001, "lowering", "syntax", "Empty array literal"},
	LOW002: {LOW002, "lowering", "syntax", "Unrecognized expression shape"},
	LOW003: {LOW003, "lowering", "returntype", "Closure return type mismatch"},
	LOW004: {LOW004, "lowering", "mutability", "Assignment to const binding"},

	LDR001: {LDR001, "loader", "io", "Loader callback failed"},
	LDR002: {LDR002, "loader", "dependency", "Circular import"},

	CFG001: {CFG001, "config", "io", "Invalid config file"},
	CFG002: {CFG002, "config", "value", "Unknown target backend"},
}

// GetErrorInfo returns information about an error code.
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, exists := Registry[code]
	return info, exists
}

// IsTypeAlgebraError reports whether code belongs to the type-algebra phase.
func IsTypeAlgebraError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "typealgebra"
}

// IsScopeError reports whether code belongs to the scope/name-resolution phase.
func IsScopeError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "scope"
}

// IsOverloadError reports whether code belongs to overload resolution.
func IsOverloadError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "overload"
}

// IsLoaderError reports whether code belongs to the loader phase.
func IsLoaderError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "loader"
}
