package cmd

import (
	"fmt"
	"os"

	"github.com/garvys-org/gofst/cmd/gofst/internal/textfmt"
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
)

func readFstFile(path string, sr semiring.Semiring) (*fst.VectorFst, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gofst: %w", err)
	}
	defer f.Close()
	return textfmt.Read(f, sr)
}
