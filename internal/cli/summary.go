// internal/cli/summary.go
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/effect-native/libsqlite/pkg/build"
)

type buildSummary struct {
	Report   *build.Report
	DistDir  string
	Contents []string
	Archive  string
	Entries  int
	Elapsed  time.Duration
}

func printBuildSummary(w io.Writer, s buildSummary) {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"", "Target", "Library", "Description"})

	for _, o := range s.Report.Outcomes {
		switch o.State {
		case build.Succeeded:
			tw.AppendRow(table.Row{okColor.Sprint("✔"), o.Target.System, o.Result.FileName, o.Target.Description})
		default:
			reason := "not built"
			if o.Err != nil {
				reason = o.Err.Error()
			}
			tw.AppendRow(table.Row{failColor.Sprint("✘"), o.Target.System, "-", truncate(reason, 60)})
		}
	}
	tw.AppendFooter(table.Row{"", "Total", fmt.Sprintf("%d/%d", s.Report.Succeeded(), s.Report.Total()), ""})

	fmt.Fprintln(w, tw.Render())
	fmt.Fprintf(w, "Built %d/%d platform libraries\n", s.Report.Succeeded(), s.Report.Total())

	if !s.Report.Universal() {
		var missing []string
		for _, f := range s.Report.Failures() {
			missing = append(missing, f.Target.System)
		}
		warnColor.Fprintf(w, "Warning: package is not universal, missing %s\n", strings.Join(missing, ", "))
	}

	dimmedColor().Fprintf(w, "Package created in %s: %s\n", s.DistDir, strings.Join(s.Contents, ", "))
	if s.Archive != "" {
		dimmedColor().Fprintf(w, "Archive: %s (%d entries)\n", s.Archive, s.Entries)
	}
	dimmedColor().Fprintf(w, "Finished in %s\n", s.Elapsed.Round(time.Millisecond))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
