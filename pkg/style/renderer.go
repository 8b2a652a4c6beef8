package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/entity"
	"github.com/arthur-debert/dotsync/pkg/syncer"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/pterm/pterm"
)

// Renderer writes pass results for people. With FormatText it emits no
// escape sequences, so output can be piped or compared in tests.
type Renderer struct {
	w      io.Writer
	format Format
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, format Format) *Renderer {
	return &Renderer{w: w, format: format}
}

func (r *Renderer) color() bool { return r.format == FormatTerminal }

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color() {
		return s
	}
	return style.Render(s)
}

func (r *Renderer) badge(status Status) string {
	label := fmt.Sprintf("%-7s", status)
	if !r.color() {
		return label
	}
	return StatusStyle(status).Sprint(" " + Symbol(status) + " " + label + " ")
}

func (r *Renderer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

// RenderSync writes one block per pair followed by record errors and a summary
func (r *Renderer) RenderSync(res *syncer.Result) {
	header := fmt.Sprintf("Syncing %s", res.Direction)
	if res.DryRun {
		header += " (dry run, nothing is written)"
	}
	r.printf("%s\n", r.paint(TitleStyle, header))
	r.printf("%s\n\n", r.paint(MutedStyle, "manager directory: "+res.ManagerRoot))

	for _, p := range res.Pairs {
		r.renderPair(p, res)
	}
	r.renderRecordErrors(res.RecordErrors)
	r.renderSummary(res)
}

// RenderStatus writes what each pair looks like without copying anything
func (r *Renderer) RenderStatus(res *syncer.Result) {
	r.printf("%s\n", r.paint(TitleStyle, "Dotfiles"))
	r.printf("%s\n\n", r.paint(MutedStyle, "manager directory: "+res.ManagerRoot))

	for _, p := range res.Pairs {
		r.renderPair(p, res)
		if p.ConstructErr == nil {
			r.printf("      manager: %-9s system: %s\n", p.ManagerKind, p.SystemKind)
		}
	}
	r.renderRecordErrors(res.RecordErrors)
	r.renderSummary(res)
}

func (r *Renderer) renderPair(p syncer.PairResult, res *syncer.Result) {
	status := PairStatus(p, res)

	from, to := p.SystemPath, p.ManagerPath
	if res.Direction == types.ToSystem {
		from, to = p.ManagerPath, p.SystemPath
	}

	r.printf("  %s %s\n", r.badge(status), r.paint(PathStyle, p.Dotfile.ManagerPath))
	r.printf("      %s -> %s\n", from, to)
	if p.ConstructErr == nil {
		r.printf("      %s\n", r.paint(MutedStyle, describe(p.Kind, p.Stats)))
	}

	var all []error
	if p.ConstructErr != nil {
		all = append(all, p.ConstructErr)
	}
	all = append(all, p.TreeErrors...)
	if p.CopyErr != nil {
		all = append(all, p.CopyErr)
	}
	all = append(all, p.CopyErrors...)
	for _, err := range all {
		r.printf("      %s %s\n", r.paint(ErrorStyle, "✗"), r.RenderError(err))
	}
}

func (r *Renderer) renderRecordErrors(errs []error) {
	if len(errs) == 0 {
		return
	}
	r.printf("\n%s\n", r.paint(WarningStyle, "Skipped configuration entries:"))
	for _, err := range errs {
		r.printf("  %s %s\n", r.paint(ErrorStyle, "✗"), r.RenderError(err))
	}
}

func (r *Renderer) renderSummary(res *syncer.Result) {
	s := res.Summary()

	parts := []string{english.Plural(s.Pairs, "pair", "pairs")}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	parts = append(parts, english.Plural(s.Errors, "error", "errors"))
	if res.Copied {
		verb := "copied"
		if res.DryRun {
			verb = "to copy"
		}
		parts = append(parts, fmt.Sprintf("%s (%s) %s",
			english.Plural(s.Files, "file", "files"), humanize.Bytes(uint64(s.Bytes)), verb))
	}

	line := "Summary: " + strings.Join(parts, ", ")
	switch {
	case s.Errors > 0:
		line = r.paint(WarningStyle, line)
	default:
		line = r.paint(SuccessStyle, line)
	}
	r.printf("\n%s\n", line)
}

// RenderError formats an error on one line. SyncErrors carry their code
// in the message already.
func (r *Renderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	if !r.color() {
		return err.Error()
	}
	return pterm.Error.MessageStyle.Sprint(err.Error())
}

func describe(kind types.Kind, stats entity.Stats) string {
	switch kind {
	case types.KindFile:
		return fmt.Sprintf("file, %s", humanize.Bytes(uint64(stats.Bytes)))
	case types.KindDirectory:
		return fmt.Sprintf("directory, %s, %s",
			english.Plural(stats.Files, "file", "files"), humanize.Bytes(uint64(stats.Bytes)))
	default:
		return kind.String()
	}
}
