package dotsync

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep dotfiles and their managed copies in sync"
	MsgSyncShort       = "Copy every configured dotfile in one direction"
	MsgStatusShort     = "Show what each configured dotfile currently is"
	MsgGenConfigShort  = "Print a sample configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgVersionFormat = "dotsync %s (commit %s, built %s)\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrSync       = "sync failed: %w"
	MsgErrStatus     = "status failed: %w"
	MsgErrGenConfig  = "failed to generate configuration: %w"
	MsgErrNoCommand  = "no command specified"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Configuration file (default ~/.config/dotsync/config.toml, or $DOTSYNC_CONFIG)"
	MsgFlagManager     = "Manager directory, overrides the configured one"
	MsgFlagFromManager = "Copy from the manager directory to the system"
	MsgFlagDryRun      = "Preview changes without writing to disk"
	MsgFlagFormat      = "Output format (toml, yaml)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
