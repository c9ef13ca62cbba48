package cmd

import (
	"os"

	"github.com/garvys-org/gofst/cmd/gofst/internal/textfmt"
	"github.com/garvys-org/gofst/compose"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose FST1 FST2",
	Short: "Compose two text-format Fsts and print the result",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompose,
}

func runCompose(_ *cobra.Command, args []string) error {
	sr, err := resolveSemiring()
	if err != nil {
		return err
	}

	fst1, err := readFstFile(args[0], sr)
	if err != nil {
		return err
	}
	fst2, err := readFstFile(args[1], sr)
	if err != nil {
		return err
	}

	out, err := compose.Compose(fst1, fst2)
	if err != nil {
		return err
	}
	return textfmt.Write(os.Stdout, out)
}
