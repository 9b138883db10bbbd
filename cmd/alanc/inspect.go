package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/alantech/alan/internal/build"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/demo"
	"github.com/alantech/alan/internal/scope"
)

// runInspect starts a read-only scope browser over every demo scenario
// compiled in sequence into one shared scope. It resolves names against
// that scope and prints their signatures; it never evaluates source, by
// design (source evaluation has no meaning here - this repo ends at a
// lowered microstatement IR, not a running program).
//
// Grounded on the teacher's internal/repl.REPL.Start (liner history
// file, multi-line-off prompt loop, ":command" completion), generalized
// from an evaluating REPL to a read-only lookup shell.
func runInspect() {
	sc, err := buildInspectScope()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".alanc_inspect_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(in string) (c []string) {
		for _, cmd := range []string{":help", ":quit", ":types", ":funcs", ":consts", ":type ", ":func "} {
			if strings.HasPrefix(cmd, in) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Fprintf(os.Stdout, "%s %s\n", bold("alanc inspect"), dim("(read-only; type :help)"))
	for {
		input, err := line.Prompt("alanc> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == ":quit" || input == ":q" {
			fmt.Println(green("Goodbye!"))
			break
		}
		handleInspectCommand(input, sc)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func buildInspectScope() (*scope.Scope, error) {
	sc := scope.New(nil)
	for _, s := range demo.All() {
		scenarioScope := s.BaseScope()
		if _, err := build.Compile(s.File, scenarioScope); err != nil {
			continue // overload-failure is expected to fail; skip it for this shared browser
		}
		sc.Merge(scenarioScope)
	}
	return sc, nil
}

func handleInspectCommand(input string, sc *scope.Scope) {
	switch {
	case input == ":help":
		fmt.Println("  :types          list every registered type name")
		fmt.Println("  :funcs          list every registered function name")
		fmt.Println("  :consts         list every registered constant name")
		fmt.Println("  :type <name>    print a type's StrictString() form")
		fmt.Println("  :func <name>    print every overload of a function")
		fmt.Println("  :quit           exit")
	case input == ":types":
		printSortedKeys(typeNames(sc))
	case input == ":funcs":
		printSortedKeys(funcNames(sc))
	case input == ":consts":
		printSortedKeys(constNames(sc))
	case strings.HasPrefix(input, ":type "):
		name := strings.TrimSpace(strings.TrimPrefix(input, ":type"))
		if t, ok := sc.ResolveType(name); ok {
			fmt.Printf("  %s :: %s\n", cyan(name), t.StrictString())
		} else {
			fmt.Printf("  %s\n", red("no such type: "+name))
		}
	case strings.HasPrefix(input, ":func "):
		name := strings.TrimSpace(strings.TrimPrefix(input, ":func"))
		overloads := sc.ResolveFunctionTypes(name)
		if len(overloads) == 0 {
			fmt.Printf("  %s\n", red("no such function: "+name))
			return
		}
		for _, decl := range overloads {
			fmt.Printf("  %s(%s) -> %s\n", cyan(name), paramList(decl.ParamTypes), decl.ReturnType.StrictString())
		}
	default:
		fmt.Printf("  %s (try :help)\n", yellow("unrecognized command"))
	}
}

func paramList(params []ctype.CType) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.StrictString()
	}
	return strings.Join(parts, ", ")
}

func typeNames(sc *scope.Scope) []string {
	out := make([]string, 0, len(sc.Types))
	for name := range sc.Types {
		out = append(out, name)
	}
	return out
}

func funcNames(sc *scope.Scope) []string {
	out := make([]string, 0, len(sc.Functions))
	for name := range sc.Functions {
		out = append(out, name)
	}
	return out
}

func constNames(sc *scope.Scope) []string {
	out := make([]string, 0, len(sc.Consts))
	for name := range sc.Consts {
		out = append(out, name)
	}
	return out
}

func printSortedKeys(names []string) {
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s\n", n)
	}
}
