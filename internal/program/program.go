// Package program implements the process-wide scope registry (spec §4.3
// Program-level scope, C5): a cache of scopes keyed by source path, a
// captured-environment snapshot, and a dual native/scripting backend
// instance, generalized from the teacher's runtime.ModuleRuntime (module
// cache + cycle detection) and grounded directly on
// original_source/alan_compiler/src/program/program.rs for the
// per-backend dual-instance and acquire/release discipline.
package program

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/scope"
)

// Backend selects which of the two process-wide Program instances is
// active, mirroring the original's PROGRAM_RS/PROGRAM_JS thread-locals:
// spec.md's "single-threaded cooperative concurrency" means a checked-out
// guard suffices here, not a mutex.
type Backend int

const (
	Native Backend = iota
	Scripting
)

func (b Backend) String() string {
	if b == Scripting {
		return "scripting"
	}
	return "native"
}

// FileEntry is one loaded-and-resolved source file: its path, raw
// source text, and the Scope built from it.
type FileEntry struct {
	Path   string
	Source string
	Scope  *scope.Scope
}

// BuildFunc compiles source text at path into a Scope. Program only
// orchestrates caching and cycle detection; it has no opinion on how a
// Scope gets built, so callers (the lower/typeresolve pipeline) inject
// this.
type BuildFunc func(path, source string) (*scope.Scope, error)

// Program is the per-backend scope registry: a cache of FileEntry keyed
// by path, in load order, plus the environment snapshot that
// Env/EnvExists/FileStr compile-time evaluation consults.
type Program struct {
	Backend Backend
	Env     map[string]string

	scopesByFile map[string]*FileEntry
	order        []string
	visiting     map[string]bool
	pathStack    []string
	checkedOut   bool
}

func newProgram(backend Backend) *Program {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	env["ALAN_OUTPUT_LANG"] = map[Backend]string{Native: "go", Scripting: "js"}[backend]
	if backend == Native {
		env["ALAN_PLATFORM"] = runtime.GOOS
	} else {
		env["ALAN_PLATFORM"] = "browser"
	}
	return &Program{
		Backend:      backend,
		Env:          env,
		scopesByFile: map[string]*FileEntry{},
		visiting:     map[string]bool{},
	}
}

var (
	nativeProgram    = newProgram(Native)
	scriptingProgram = newProgram(Scripting)
	activeBackend    = Native
)

func programFor(b Backend) *Program {
	if b == Scripting {
		return scriptingProgram
	}
	return nativeProgram
}

// SetBackend switches which instance Acquire returns.
func SetBackend(b Backend) { activeBackend = b }

// ActiveBackend reports the currently selected backend.
func ActiveBackend() Backend { return activeBackend }

// Acquire checks out the active backend's Program. It panics if the
// Program is already checked out: under the single-threaded cooperative
// model this indicates a reentrant Acquire bug, not contention to wait
// out.
func Acquire() *Program {
	p := programFor(activeBackend)
	if p.checkedOut {
		panic("program: already checked out")
	}
	p.checkedOut = true
	return p
}

// Release checks p back in.
func Release(p *Program) {
	p.checkedOut = false
}

// Reset clears both backend instances. Test-only.
func Reset() {
	nativeProgram = newProgram(Native)
	scriptingProgram = newProgram(Scripting)
	activeBackend = Native
}

var (
	sourceLoader = defaultLoader
	stdlib       = map[string]string{}
)

func defaultLoader(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetSourceLoader overrides how non-"@"-prefixed paths are read. Pass
// nil to restore the default (os.ReadFile).
func SetSourceLoader(loader func(path string) (string, error)) {
	if loader == nil {
		sourceLoader = defaultLoader
		return
	}
	sourceLoader = loader
}

// RegisterStdlib makes src available under the virtual "@name" path, the
// way the original embeds its std/fs.ln and std/seq.ln sources.
func RegisterStdlib(name, src string) {
	stdlib[name] = src
}

func readSource(path string) (string, error) {
	if strings.HasPrefix(path, "@") {
		if src, ok := stdlib[path]; ok {
			return src, nil
		}
		return "", fmt.Errorf("unknown standard library path %s", path)
	}
	return sourceLoader(path)
}

// ScopeByFile returns the cached scope for path, if loaded.
func (p *Program) ScopeByFile(path string) (*scope.Scope, bool) {
	e, ok := p.scopesByFile[path]
	if !ok {
		return nil, false
	}
	return e.Scope, true
}

// Files returns every loaded path in load order.
func (p *Program) Files() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Load resolves path to a FileEntry, building it with build on first
// load and returning the cached entry on every subsequent call. It
// detects circular imports via a visiting set plus a DFS path stack, the
// same two data structures the teacher's ModuleRuntime uses, reported as
// an ordered "a -> b -> a" cycle per errcode.LDR002.
func (p *Program) Load(path string, build BuildFunc) (*FileEntry, error) {
	if e, ok := p.scopesByFile[path]; ok {
		return e, nil
	}
	if p.visiting[path] {
		return nil, errcode.WrapReport(errcode.New(errcode.LDR002, "loader",
			"circular import detected").With("cycle", p.cyclePath(path)))
	}

	p.visiting[path] = true
	p.pathStack = append(p.pathStack, path)
	defer func() {
		delete(p.visiting, path)
		p.pathStack = p.pathStack[:len(p.pathStack)-1]
	}()

	source, err := readSource(path)
	if err != nil {
		return nil, errcode.WrapReport(errcode.New(errcode.LDR001, "loader",
			"failed to read source for "+path).With("cause", err.Error()))
	}

	sc, err := build(path, source)
	if err != nil {
		if rep, ok := errcode.AsReport(err); ok && rep.Code == errcode.LDR002 {
			return nil, err
		}
		return nil, errcode.WrapReport(errcode.New(errcode.LDR001, "loader",
			"failed to build scope for "+path).With("cause", err.Error()))
	}

	entry := &FileEntry{Path: path, Source: source, Scope: sc}
	p.scopesByFile[path] = entry
	p.order = append(p.order, path)
	return entry, nil
}

func (p *Program) cyclePath(path string) []string {
	cycle := []string{}
	started := false
	for _, entry := range p.pathStack {
		if entry == path {
			started = true
		}
		if started {
			cycle = append(cycle, entry)
		}
	}
	cycle = append(cycle, path)
	return cycle
}
