// Command gasm runs a source program through the virtual processor
// interpreter. It is a thin external collaborator (spec §1, §6): argument
// parsing, opening the output sink and the top-level driver loop all live
// here, outside the core interpreter packages.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kstephano-labs/gasm/internal/core"
	"github.com/kstephano-labs/gasm/internal/interp"
)

var (
	printInstructions bool
	outputPath        string
	stackSize         int
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gasm [file]",
		Short:         "Run a program on the virtual processor interpreter",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runProgram,
	}

	cmd.Flags().BoolVarP(&printInstructions, "instructions", "i", false, "print the number of instructions executed on exit")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write prr/prs output to this file instead of standard output")
	cmd.Flags().IntVarP(&stackSize, "stack-size", "s", core.DefaultStackCapacity, "stack capacity in bytes")

	return cmd
}

func runProgram(cmd *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return &core.FailedOutputFileCreation{Msg: err.Error()}
	}
	defer closeOut()

	vm, err := interp.New(source, interp.Options{
		StackCapacity: stackSize,
		Output:        out,
	})
	if err != nil {
		return err
	}

	runErr := vm.Run()

	if printInstructions {
		fmt.Fprintf(cmd.OutOrStdout(), "instructions: %d\n", vm.InstructionCount())
	}

	return runErr
}

func readSource(args []string) (string, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
