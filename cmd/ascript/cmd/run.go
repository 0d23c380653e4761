package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ascript/ascript/internal/ast"
	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/parser"
	"github.com/go-ascript/ascript/pkg/ascript"
	"github.com/go-ascript/ascript/pkg/config"
)

var (
	dumpAST    bool
	withJSON   bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file, or a batch of scripts named by a config file",
	Long: `Execute a script file from disk.

Examples:
  # Run a script file
  ascript run script.as

  # Dump the parsed AST instead of running it
  ascript run --dump-ast script.as

  # Run every script named in a batch config
  ascript run -c project.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST instead of running")
	runCmd.Flags().BoolVar(&withJSON, "json", false, "install the JSON.Parse/JSON.Stringify built-ins")
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "run a batch of scripts named by a YAML config file")
}

func runScript(_ *cobra.Command, args []string) error {
	if configPath != "" {
		return runBatch(configPath)
	}
	if len(args) != 1 {
		return fmt.Errorf("provide a script file, or use -c for a batch config")
	}
	filename := args[0]

	if dumpAST {
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		p := parser.New(filename, string(data))
		root, err := p.ParseProgram()
		if err != nil {
			printErr(err)
			return fmt.Errorf("parsing failed")
		}
		fmt.Println(ast.Dump(root))
		return nil
	}

	s, err := ascript.New(filename, ascript.WithJSON(withJSON))
	if err != nil {
		printErr(err)
		return fmt.Errorf("failed to load %s", filename)
	}
	if err := s.Run(); err != nil {
		printErr(err)
		return fmt.Errorf("run failed")
	}
	return nil
}

func runBatch(path string) error {
	project, err := config.Load(path)
	if err != nil {
		return err
	}
	results := config.RunAll(project)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s\n", r.Path)
			printErr(r.Err)
			continue
		}
		fmt.Printf("ok   %s\n", r.Path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d script(s) failed", failed, len(results))
	}
	return nil
}

func printErr(err error) {
	if ie, ok := err.(*diag.Error); ok {
		fmt.Fprint(os.Stderr, ie.Format())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
