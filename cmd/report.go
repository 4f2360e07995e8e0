package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"botdash/internal/usecases"
)

// writeReport renders a dashboard view as plain text.
func writeReport(w io.Writer, view *usecases.DashboardView) error {
	t := view.Tenant
	loc := t.Loc()
	fmt.Fprintf(w, "%s (%s)\n", t.Name, t.Kind)
	fmt.Fprintf(w, "Week %s, generated %s\n\n", view.Period, usecases.FormatDateTime(view.GeneratedAt, loc))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, m := range view.Metrics {
		trend := ""
		if m.TrendDisplay != "" {
			trend = m.TrendDisplay + " " + m.Caption
		} else if m.Caption != "" {
			trend = m.Caption
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Title, m.Display, strings.TrimSpace(trend))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nRecent activity\n")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range view.Activity {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Extra, a.Title, a.Subtitle, usecases.FormatStatus(a.Status))
	}
	return tw.Flush()
}
