package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/alantech/alan/internal/demo"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing scenario name\n", red("Error"))
			fmt.Println("Usage: alanc check <scenario>")
			os.Exit(1)
		}
		if err := runCheck(flag.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
	case "list":
		listScenarios()
	case "inspect":
		runInspect()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("alanc %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("alanc - the type-algebra compiler core, demo driver"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  alanc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <name>   Compile one of the built-in scenarios and print its lowered form\n", cyan("check"))
	fmt.Printf("  %s          List the available scenario names\n", cyan("list"))
	fmt.Printf("  %s        Browse a compiled scope interactively (read-only, never evaluates)\n", cyan("inspect"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version   Print version information")
	fmt.Println("  --help      Show this help message")
	fmt.Println()
	fmt.Println("Scenario names:")
	for _, name := range demo.Names() {
		fmt.Printf("  %s\n", cyan(name))
	}
}

func listScenarios() {
	for _, s := range demo.All() {
		fmt.Printf("%s\n  %s\n", bold(s.Name), dim(s.Description))
	}
}
