package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/hwy-montecarlo/hwy"
	"github.com/ajroetker/hwy-montecarlo/hwy/contrib/circle"
)

func newArchCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "arch",
		Short: "Print the detected platform and SIMD support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printArch(out)
			return nil
		},
	}
}

func printArch(w io.Writer) {
	fmt.Fprintf(w, "[INFO] Detected platform: %s/%s (%d CPUs)\n", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	if hwy.CurrentLevel() == hwy.DispatchScalar {
		fmt.Fprintln(w, "[WARN] No SIMD support detected")
	} else {
		name := cases.Upper(language.English).String(hwy.CurrentName())
		fmt.Fprintf(w, "[INFO] SIMD: %s enabled (%d-byte vectors)\n", name, hwy.CurrentWidth())
	}
	k := circle.Default()
	fmt.Fprintf(w, "[INFO] Batch kernel: %s (%d lanes)\n", k.Name(), k.Lanes())
}
