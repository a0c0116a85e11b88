package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"nutrilife-landing/internal/config"
	"nutrilife-landing/internal/modelfix"
)

var (
	BuildVersion = "master"
	BuildCommit  = "00000000"
)

type options struct {
	modelPath string
	dryRun    bool
}

func main() {
	_ = godotenv.Load()

	cfg := config.New()
	if err := fang.Execute(context.Background(), newRootCmd(cfg.ModelPath)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(defaultModelPath string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "fixmodel",
		Short: "Patch the exported meal model for the browser runtime",
		Long: `fixmodel rewrites the input layer of the exported Keras model so that the
JavaScript runtime can load it: batch_shape becomes batchInputShape and the
sparse and ragged fields are removed.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	rootCmd.Flags().StringVar(&opts.modelPath, "model", defaultModelPath, "Path to model.json")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the patched document instead of writing it")

	rootCmd.AddCommand(&cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	})

	return rootCmd
}

func version(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "fixmodel - NutriLife model patcher\n\n")
	fmt.Fprintf(out, "  Version: %s\n", BuildVersion)
	fmt.Fprintf(out, "  Commit:  %s\n", BuildCommit)
	fmt.Fprintf(out, "  Runtime: %s\n", runtime.Version())
}

// run patches the model. In dry-run mode the document goes to stdout and the
// report to stderr.
func run(cmd *cobra.Command, opts *options) error {
	report, err := modelfix.FixFile(opts.modelPath, modelfix.Options{
		DryRun: opts.dryRun,
		Output: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		out = cmd.ErrOrStderr()
	}

	for _, line := range report.Lines() {
		fmt.Fprintln(out, line)
	}
	if !report.InputLayer {
		fmt.Fprintln(out, "First layer is not an InputLayer, nothing to convert")
	}
	if !opts.dryRun {
		fmt.Fprintf(out, "✓ Model fixed and saved to %s\n", opts.modelPath)
	}

	return nil
}
