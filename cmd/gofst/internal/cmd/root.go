package cmd

import (
	"github.com/garvys-org/gofst/semiring"
	"github.com/spf13/cobra"
)

var semiringName string

// rootCmd is the gofst CLI entry point: subcommands compose and determinize
// operate on the text Fst format (internal/textfmt), over whichever
// semiring --semiring names.
var rootCmd = &cobra.Command{
	Use:   "gofst",
	Short: "Lazy WFST composition and determinization from the shell",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&semiringName, "semiring", "tropical",
		"weight semiring: tropical, log, probability, integer, boolean")
	rootCmd.AddCommand(composeCmd, determinizeCmd)
}

// Execute runs the gofst root command.
func Execute() error {
	return rootCmd.Execute()
}

func resolveSemiring() (semiring.Semiring, error) {
	switch semiringName {
	case "tropical":
		return semiring.Tropical, nil
	case "log":
		return semiring.Log, nil
	case "probability":
		return semiring.Probability, nil
	case "integer":
		return semiring.Integer, nil
	case "boolean":
		return semiring.Boolean, nil
	default:
		return nil, &unknownSemiringError{semiringName}
	}
}

type unknownSemiringError struct{ name string }

func (e *unknownSemiringError) Error() string {
	return "gofst: unknown --semiring " + e.name
}
