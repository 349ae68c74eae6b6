// Command tildegen renders a directory tree of MML documents into
// static pages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tildegen/tildegen/pipeline"
)

func main() {
	os.Exit(int(run()))
}

func run() pipeline.Result {
	res := pipeline.ResultSuccess

	cmd := &cobra.Command{
		Use:   "tildegen <input_directory> <output_directory>",
		Short: "Static MML document generator",
		Long: `Renders every *.mml file found under input_directory into
output_directory, evaluating embedded expressions along the way.

Arguments:
  input_directory   - Directory with input blog data
  output_directory  - Directory for storing the resulting blog files`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, argv []string) error {
			args := pipeline.ParseArgs(argv)
			if args == nil {
				res = pipeline.ResultInvalidArgs
				return nil
			}
			res = pipeline.Run(args.InputDir, args.OutputDir)
			if res != pipeline.ResultSuccess {
				fmt.Fprintf(os.Stderr, "tildegen: %v\n", res)
			}
			return nil
		},
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid command line arguments\n")
		fmt.Fprintln(os.Stderr, cmd.UsageString())
		return pipeline.ResultInvalidArgs
	}
	return res
}
