package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/copyleftdev/STEPPE/internal/benchmark"
	"github.com/copyleftdev/STEPPE/internal/benchmark/synthetic"
	"github.com/copyleftdev/STEPPE/internal/space"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available benchmark functions",
	RunE:  listBenchmarks,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func propertyString(p synthetic.Property) string {
	names := []struct {
		bit  synthetic.Property
		name string
	}{
		{synthetic.Continuous, "continuous"},
		{synthetic.Differentiable, "differentiable"},
		{synthetic.Separable, "separable"},
		{synthetic.Scalable, "scalable"},
		{synthetic.Multimodal, "multimodal"},
		{synthetic.Convex, "convex"},
	}

	parts := make([]string, 0, len(names))
	for _, n := range names {
		if p.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, ",")
}

func boundsString(ss space.Space) string {
	if len(ss) == 0 {
		return ""
	}

	first, ok := ss[0].(*space.Uniform)
	if !ok {
		return "mixed"
	}
	for _, p := range ss[1:] {
		u, ok := p.(*space.Uniform)
		if !ok || u.Lower() != first.Lower() || u.Upper() != first.Upper() {
			return "per-dim"
		}
	}
	return fmt.Sprintf("[%g, %g]", first.Lower(), first.Upper())
}

func listBenchmarks(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIMS\tBOUNDS\tOPTIMUM\tPROPERTIES")

	for _, b := range synthetic.Suite().All() {
		optimum := ""
		if ref, ok := b.(benchmark.Reference); ok {
			optimum = fmt.Sprintf("%g", ref.OptimumValue())
		}
		props := ""
		if f, ok := b.(*synthetic.Function); ok {
			props = propertyString(f.Properties())
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			b.Name(), len(b.SearchSpace()), boundsString(b.SearchSpace()), optimum, props)
	}

	return w.Flush()
}
