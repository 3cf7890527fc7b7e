package cli

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/calllog/internal/model"
)

// WriteCalls renders calls as a titled table. isUnresolved, if set, marks
// rows whose resolved flag should be highlighted. It returns the number of
// rows written.
func WriteCalls(w io.Writer, title string, calls iter.Seq[model.Call], isUnresolved func(model.Call) bool) (int, error) {
	if _, err := fmt.Fprintln(w, FormatTitle(title)); err != nil {
		return 0, fmt.Errorf("failed to write title: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render(model.ColumnNumber),
		TableHeaderStyle.Render(model.ColumnPhone),
		TableHeaderStyle.Render(model.ColumnReason),
		TableHeaderStyle.Render(model.ColumnResolved)); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	rows := 0
	for call := range calls {
		resolved := call.Resolved
		if isUnresolved != nil && isUnresolved(call) {
			resolved = UnresolvedStyle.Render(resolved)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			call.Number,
			oneLine(call.Phone),
			oneLine(call.Reason),
			resolved); err != nil {
			return rows, fmt.Errorf("failed to write call %d: %w", call.Number, err)
		}
		rows++
	}

	if err := tw.Flush(); err != nil {
		return rows, fmt.Errorf("failed to flush table: %w", err)
	}

	if rows == 0 {
		if _, err := fmt.Fprintln(w, SubtleStyle.Render("  (no calls)")); err != nil {
			return 0, fmt.Errorf("failed to write empty marker: %w", err)
		}
	}
	return rows, nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// oneLine keeps multi-line field values from breaking table rows.
func oneLine(s string) string {
	return lineBreaks.Replace(s)
}
