package cmd

import (
	"os"

	"github.com/garvys-org/gofst/cmd/gofst/internal/textfmt"
	"github.com/garvys-org/gofst/determinize"
	"github.com/spf13/cobra"
)

var determinizeCmd = &cobra.Command{
	Use:   "determinize FST",
	Short: "Determinize a text-format weighted acceptor and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeterminize,
}

func runDeterminize(_ *cobra.Command, args []string) error {
	sr, err := resolveSemiring()
	if err != nil {
		return err
	}

	f, err := readFstFile(args[0], sr)
	if err != nil {
		return err
	}

	out, err := determinize.Determinize(f)
	if err != nil {
		return err
	}
	return textfmt.Write(os.Stdout, out)
}
