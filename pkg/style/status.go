package style

import (
	"github.com/arthur-debert/dotsync/pkg/syncer"
	"github.com/pterm/pterm"
)

// Status is the outcome shown for one pair
type Status string

const (
	StatusSynced  Status = "synced"  // Copied without errors
	StatusPreview Status = "preview" // Dry run, would copy without errors
	StatusPartial Status = "partial" // Copied, some entries failed
	StatusFailed  Status = "failed"  // Pair could not be built or copied
	StatusReady   Status = "ready"   // Built, nothing copied (status command)
)

// PairStatus classifies a pair result
func PairStatus(r syncer.PairResult, res *syncer.Result) Status {
	switch {
	case r.Failed():
		return StatusFailed
	case r.ErrorCount() > 0:
		return StatusPartial
	case !res.Copied:
		return StatusReady
	case res.DryRun:
		return StatusPreview
	default:
		return StatusSynced
	}
}

// StatusStyle returns the badge style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusSynced:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case StatusPreview:
		return pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	case StatusPartial:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Symbol returns the one-character marker for a status
func Symbol(status Status) string {
	switch status {
	case StatusSynced, StatusPreview:
		return "✓"
	case StatusPartial:
		return "!"
	case StatusFailed:
		return "✗"
	default:
		return "•"
	}
}
