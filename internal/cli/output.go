package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"hrmsconsole/internal/domain/upsert"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprint(cell)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func printOutcome[T any](w io.Writer, outcome upsert.Outcome[T]) {
	if outcome.Message != "" {
		fmt.Fprintln(w, outcome.Message)
	}
}
