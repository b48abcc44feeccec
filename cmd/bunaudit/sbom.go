package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bunaudit/bunaudit/decode"
	spdxenc "github.com/bunaudit/bunaudit/sbom/spdx"
)

type sbomConfig struct {
	format string
	out    string
}

var sbomCfg sbomConfig

var sbomCmd = &cobra.Command{
	Use:   "sbom <path>",
	Short: "project a bun.lockb lockfile into an SBOM document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSBOM,
}

func init() {
	fs := sbomCmd.Flags()
	fs.StringVar(&sbomCfg.format, "format", "spdx-json", "SBOM format to emit: spdx-json")
	fs.StringVar(&sbomCfg.out, "out", "", "output path (defaults to stdout)")
	rootCmd.AddCommand(sbomCmd)
}

func runSBOM(cmd *cobra.Command, args []string) error {
	path := args[0]
	if sbomCfg.format != "spdx-json" {
		return &runError{code: 99, err: fmt.Errorf("sbom: unknown format %q", sbomCfg.format)}
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return &runError{code: 99, err: err}
	}
	lf, err := decode.Decode(buf)
	if err != nil {
		return &runError{code: 99, err: fmt.Errorf("decoding %s: %w", path, err)}
	}

	enc := &spdxenc.Encoder{
		Version:           spdxenc.V2_3,
		Format:            spdxenc.JSONFormat,
		Creators:          []spdxenc.Creator{{Creator: "bunaudit", CreatorType: "Tool"}},
		DocumentName:      path,
		DocumentNamespace: fmt.Sprintf("https://bunaudit.invalid/sbom/%s", path),
	}
	r, err := enc.Encode(cmd.Context(), lf)
	if err != nil {
		return &runError{code: 99, err: err}
	}

	w := io.Writer(os.Stdout)
	if sbomCfg.out != "" {
		f, err := os.Create(sbomCfg.out)
		if err != nil {
			return &runError{code: 99, err: err}
		}
		defer f.Close()
		w = f
	}
	if _, err := io.Copy(w, r); err != nil {
		return &runError{code: 99, err: err}
	}
	return nil
}
