package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/bnema/zprune/internal/adapters/in/cli/ui/components"
	"github.com/bnema/zprune/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/zprune/internal/app"
	"github.com/bnema/zprune/internal/domain"
)

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

var cliWritef = func(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func cliRenderTitle(msg string) string {
	return styles.Theme.Title.Render(msg)
}

func cliRenderMuted(msg string) string {
	return styles.Theme.Muted.Render(msg)
}

func cliRenderMeta(label, value string) string {
	return styles.Theme.Bold.Render(label) + " " + styles.Theme.Muted.Render(value)
}

func cliRenderSuccess(msg string) string {
	return styles.RenderSuccess(msg)
}

func cliRenderWarning(msg string) string {
	return styles.RenderWarning(msg)
}

func cliRenderError(msg string) string {
	return styles.RenderError(msg)
}

func cliRenderInfo(msg string) string {
	return styles.RenderInfo(msg)
}

const (
	decisionSnapshotColumnWidth = 42
	decisionTimeColumnWidth     = 21
	decisionActionColumnWidth   = 13
	decisionReasonColumnWidth   = 38

	decisionTimeLayout = "2006-01-02 15:04:05"
)

var decisionTableColumns = []components.TableColumn{
	{Title: "SNAPSHOT", Width: decisionSnapshotColumnWidth},
	{Title: "TIME", Width: decisionTimeColumnWidth},
	{Title: "ACTION", Width: decisionActionColumnWidth},
	{Title: "REASONS", Width: decisionReasonColumnWidth},
}

// reportView selects how a run report is printed.
type reportView struct {
	format string
	// decisions prints one table row per snapshot in text output.
	decisions bool
}

func writeReport(out io.Writer, report *domain.RunReport, view reportView) error {
	switch view.format {
	case app.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case app.OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case app.OutputText, "":
		return writeTextReport(out, report, view.decisions)
	default:
		return fmt.Errorf("unknown output format %q", view.format)
	}
}

func writeTextReport(out io.Writer, report *domain.RunReport, showDecisions bool) error {
	if report.DryRun {
		if err := cliWriteLine(out, cliRenderWarning("Dry run: nothing was destroyed")); err != nil {
			return err
		}
	}

	wouldPurge := 0
	for _, ds := range report.Datasets {
		wouldPurge += ds.WouldPurge

		if err := cliWriteLine(out, "\n"+cliRenderTitle(ds.Dataset)); err != nil {
			return err
		}
		if showDecisions && len(ds.Decisions) > 0 {
			if err := cliWriteLine(out, decisionTable(ds.Decisions)); err != nil {
				return err
			}
		}
		if err := cliWriteLine(out, datasetSummary(ds)); err != nil {
			return err
		}
		if ds.CapReached {
			msg := fmt.Sprintf("Max purge reached, %d candidates deferred to the next run", ds.Deferred)
			if err := cliWriteLine(out, cliRenderWarning(msg)); err != nil {
				return err
			}
		}
		if ds.Failed() {
			if err := cliWriteLine(out, cliRenderError(ds.Error)); err != nil {
				return err
			}
		}
	}

	if err := cliWriteLine(out, ""); err != nil {
		return err
	}

	switch {
	case !report.Succeeded():
		return cliWriteLine(out, cliRenderError(fmt.Sprintf("Run %s failed after purging %d snapshots", report.RunID, report.TotalPurged())))
	case report.DryRun:
		return cliWriteLine(out, cliRenderInfo(fmt.Sprintf("%d snapshots would be purged", wouldPurge)))
	default:
		return cliWriteLine(out, cliRenderSuccess(fmt.Sprintf("Purged %d snapshots in %s", report.TotalPurged(), report.Duration.Round(time.Millisecond))))
	}
}

func datasetSummary(ds domain.DatasetReport) string {
	parts := []string{
		cliRenderMeta("listed", strconv.Itoa(ds.Listed)),
		cliRenderMeta("kept", strconv.Itoa(ds.Kept)),
	}

	counts := []struct {
		label string
		n     int
	}{
		{"purged", ds.Purged},
		{"would purge", ds.WouldPurge},
		{"skipped", ds.Skipped},
		{"deferred", ds.Deferred},
		{"unparsed", ds.Unparsed},
		{"filtered", ds.Filtered},
	}
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, cliRenderMeta(c.label, strconv.Itoa(c.n)))
		}
	}

	return strings.Join(parts, cliRenderMuted(" · "))
}

func decisionTable(decisions []domain.Decision) string {
	rows := make([][]string, 0, len(decisions))
	for _, d := range decisions {
		rows = append(rows, []string{
			d.Snapshot,
			d.Timestamp.Format(decisionTimeLayout),
			string(d.Action),
			decisionReason(d),
		})
	}

	return components.NewTable(
		components.WithColumns(decisionTableColumns),
		components.WithRows(rows),
		components.WithCellStyleFunc(func(row, col int, base lipgloss.Style) lipgloss.Style {
			if col != 2 || row < 0 || row >= len(decisions) {
				return base
			}
			return base.Foreground(styles.ActionStyle(string(decisions[row].Action)).GetForeground())
		}),
	).Render()
}

func decisionReason(d domain.Decision) string {
	switch {
	case len(d.Reasons) > 0:
		return d.Reasons.String()
	case d.ExitCode != 0 && d.Detail != "":
		return fmt.Sprintf("exit %d: %s", d.ExitCode, d.Detail)
	case d.ExitCode != 0:
		return fmt.Sprintf("exit %d", d.ExitCode)
	default:
		return d.Detail
	}
}
