// Command projdemo runs the string-tag scenario through the get/set,
// naive modify, and projection accessors and shows which of them
// duplicates the content buffer.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/projection"
	"github.com/wippyai/projection/linmem"
)

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute parses flags and runs the selected mode. Deferred cleanup such as
// flushing the logger runs before main decides the exit status.
func execute(args []string) error {
	flags := pflag.NewFlagSet("projdemo", pflag.ContinueOnError)
	var (
		scenarioFile = flags.StringP("scenario", "s", "", "YAML scenario file (tag, content, suffix, index, delta)")
		strategyName = flags.String("strategy", "", "Run a single strategy: get/set, naive modify, projection")
		linear       = flags.Bool("linear", false, "Also project the tag through a wasm linear memory slot")
		interactive  = flags.BoolP("interactive", "i", false, "Interactive mode with TUI")
		plain        = flags.Bool("plain", false, "Disable styled output")
		verbose      = flags.BoolP("verbose", "v", false, "Log projection lifecycle to stderr")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		projection.SetLogger(log.Named("projection"))
		linmem.SetLogger(log.Named("linmem"))
	}

	sc, err := loadScenario(*scenarioFile)
	if err != nil {
		return err
	}

	if *interactive {
		return runInteractive(sc)
	}

	rep := reporter{styled: !*plain && term.IsTerminal(int(os.Stdout.Fd()))}
	return run(context.Background(), rep, sc, *strategyName, *linear)
}

func run(ctx context.Context, rep reporter, sc Scenario, strategyName string, linear bool) error {
	results := runAll(sc)
	if strategyName != "" {
		st, ok := findStrategy(strategyName)
		if !ok {
			return fmt.Errorf("unknown strategy %q", strategyName)
		}
		results = []result{st.run(sc)}
	}

	if err := rep.write(os.Stdout, sc, results); err != nil {
		return err
	}

	if linear {
		res, err := runLinear(ctx, sc)
		if err != nil {
			return fmt.Errorf("linear memory: %w", err)
		}
		fmt.Println()
		fmt.Println(rep.linear(res))
	}
	return nil
}
