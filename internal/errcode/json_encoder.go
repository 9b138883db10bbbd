package errcode

import (
	"encoding/json"
	"fmt"
)

// MarshalDeterministic renders v as JSON with keys in a stable order.
// encoding/json already sorts map[string]... keys lexicographically, so
// this is a thin, documented wrapper rather than a custom encoder.
func MarshalDeterministic(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// SafeEncodeError renders any error as a best-effort Report, never panics.
func SafeEncodeError(err error, phase string) []byte {
	if err == nil {
		return nil
	}
	var rep *Report
	if r, ok := AsReport(err); ok {
		rep = r
	} else {
		rep = New("UNKNOWN", phase, err.Error())
	}
	data, encErr := MarshalDeterministic(rep)
	if encErr != nil {
		return []byte(fmt.Sprintf(`{"schema":"alan.error/v1","code":"UNKNOWN","phase":%q,"message":"encoding failed"}`, phase))
	}
	return data
}

// FormatSourceSpan formats a file position as "file:line:col".
func FormatSourceSpan(file string, line, col int) string {
	return fmt.Sprintf("%s:%d:%d", file, line, col)
}
