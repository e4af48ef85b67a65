// Command wfsadiff compares weighted automaton files and reports
// structural differences.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
	"github.com/ha1tch/wfsa-toolkit/pkg/wfsafile"
)

const usage = `wfsadiff - structural comparison of weighted automata

Usage:
  wfsadiff <command> [options]

Commands:
  compare    Compare two automaton files, print a report
  dot        Generate Graphviz DOT output (one automaton, or a diff of two)
  png        Render a PNG image (one automaton, or a diff of two)
  info       Show automaton information
  validate   Validate an automaton file

Examples:
  wfsadiff compare expected.json actual.json
  wfsadiff compare expected.yaml actual.yaml -t "determinize output" -w 100
  wfsadiff dot a.json b.json -o diff.dot
  wfsadiff png a.json -o a.png
  wfsadiff info a.json

Automaton files may be .json, .yaml or .yml.
compare exits with status 1 when the automata are not structurally equal.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "compare":
		cmdCompare(args)
	case "dot":
		cmdDot(args)
	case "png":
		cmdPNG(args)
	case "info":
		cmdInfo(args)
	case "validate":
		cmdValidate(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func cmdCompare(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: wfsadiff compare <first> <second> [-t title] [-w width] [-q]")
		os.Exit(1)
	}

	opts := wfsa.DefaultReportOptions()
	quiet := false

	for i := 2; i < len(args); i++ {
		switch args[i] {
		case "-t", "--title":
			if i+1 < len(args) {
				opts.Title = args[i+1]
				i++
			}
		case "-w", "--width":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil || n <= 0 {
					fmt.Fprintf(os.Stderr, "Invalid width: %s\n", args[i+1])
					os.Exit(1)
				}
				opts.MaxWidth = n
				i++
			}
		case "-q", "--quiet":
			quiet = true
		}
	}

	a := loadAutomaton(args[0])
	b := loadAutomaton(args[1])

	report := wfsa.CompareWith(a, b, opts)
	if !quiet {
		fmt.Println(report)
	}
	if !report.StructurallyEqual() {
		os.Exit(1)
	}
}

func cmdDot(args []string) {
	inputs, output, title := parseRenderArgs(args, "wfsadiff dot <first> [second] [-o output] [-t title]")

	var dot string
	if len(inputs) == 2 {
		dot = wfsafile.GenerateDiffDOT(loadAutomaton(inputs[0]), loadAutomaton(inputs[1]), title)
	} else {
		dot = wfsafile.GenerateDOT(loadAutomaton(inputs[0]), title)
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
			os.Exit(1)
		}
	} else {
		fmt.Print(dot)
	}
}

func cmdPNG(args []string) {
	inputs, output, title := parseRenderArgs(args, "wfsadiff png <first> [second] -o output [-t title]")
	if output == "" {
		fmt.Fprintln(os.Stderr, "png requires an output file (-o)")
		os.Exit(1)
	}

	opts := wfsafile.DefaultPNGOptions()
	opts.Title = title

	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", output, err)
		os.Exit(1)
	}
	defer out.Close()

	if len(inputs) == 2 {
		err = wfsafile.RenderDiffPNG(loadAutomaton(inputs[0]), loadAutomaton(inputs[1]), out, opts)
	} else {
		err = wfsafile.RenderPNG(loadAutomaton(inputs[0]), out, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("Written: %s\n", output)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wfsadiff info <input>")
		os.Exit(1)
	}

	a := loadAutomaton(args[0])

	kind := "acceptor"
	if a.IsTransducer() {
		kind = "transducer"
	}
	fmt.Printf("Type:        %s\n", kind)
	if a.Name != "" {
		fmt.Printf("Name:        %s\n", a.Name)
	}
	fmt.Printf("Semiring:    %s\n", a.R)
	fmt.Printf("States:      %d\n", len(a.Q))
	fmt.Printf("Inputs:      %d\n", len(a.Sigma))
	if a.IsTransducer() {
		fmt.Printf("Outputs:     %d\n", len(a.Omega))
	}
	fmt.Printf("Arcs:        %d\n", len(a.Delta))

	zero := a.R.Zero()
	var initial, final []wfsa.State
	for _, q := range a.States() {
		if !a.InitialWeight(q).Equal(zero) {
			initial = append(initial, q)
		}
		if !a.FinalWeight(q).Equal(zero) {
			final = append(final, q)
		}
	}
	fmt.Printf("Initial:     %v\n", initial)
	fmt.Printf("Final:       %v\n", final)
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wfsadiff validate <input>")
		os.Exit(1)
	}

	a := loadAutomaton(args[0])
	if err := a.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	kind := "acceptor"
	if a.IsTransducer() {
		kind = "transducer"
	}
	fmt.Printf("%s: valid %s with %d states, %d arcs\n",
		args[0], kind, len(a.Q), len(a.Delta))
}

// parseRenderArgs splits the dot/png argument list into input files and
// the -o/-t options.
func parseRenderArgs(args []string, usageLine string) (inputs []string, output, title string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "-t", "--title":
			if i+1 < len(args) {
				title = args[i+1]
				i++
			}
		default:
			inputs = append(inputs, args[i])
		}
	}
	if len(inputs) < 1 || len(inputs) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: "+usageLine)
		os.Exit(1)
	}
	return inputs, output, title
}

func loadAutomaton(path string) *wfsa.Automaton {
	a, err := wfsafile.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}
	return a
}
