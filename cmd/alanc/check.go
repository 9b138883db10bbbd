package main

import (
	"fmt"
	"sort"

	"github.com/alantech/alan/internal/build"
	"github.com/alantech/alan/internal/demo"
	"github.com/alantech/alan/internal/errcode"
)

// runCheck compiles one of the built-in demo scenarios and prints the
// lowered microstatement form of every non-generic function it declared
// directly,
// or the structured diagnostic if compilation failed. It never
// evaluates anything; print(0)/output-order questions are a backend's
// concern, not this driver's.
func runCheck(name string) error {
	scenario, ok := demo.Find(name)
	if !ok {
		return fmt.Errorf("unknown scenario %q (try 'alanc list')", name)
	}

	sc := scenario.BaseScope()
	res, err := build.Compile(scenario.File, sc)
	if err != nil {
		if rep, ok := errcode.AsReport(err); ok {
			js, _ := rep.ToJSON(false)
			fmt.Printf("%s %s\n%s\n", red("compile failed:"), bold(rep.Code), js)
			return nil
		}
		return err
	}

	fmt.Printf("%s %s\n", green("compiled:"), bold(scenario.Name))
	names := make([]string, 0, len(res.Functions))
	for fname := range res.Functions {
		names = append(names, fname)
	}
	sort.Strings(names)
	for _, fname := range names {
		fmt.Printf("\n%s:\n", cyan(fname))
		for _, m := range res.Functions[fname] {
			fmt.Printf("  %s\n", m.String())
		}
	}
	return nil
}
