package dotsync

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotsync/internal/version"
	"github.com/arthur-debert/dotsync/pkg/cobrax/topics"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/style"
	"github.com/arthur-debert/dotsync/pkg/syncer"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the flags shared by every command
type globalOptions struct {
	verbosity  int
	configPath string
	manager    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotsync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.manager, "manager", "m", "", MsgFlagManager)
	_ = rootCmd.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")
	_ = rootCmd.MarkPersistentFlagDirname("manager")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSyncCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if _, err := topics.Initialize(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newSyncCmd(opts *globalOptions) *cobra.Command {
	var (
		fromManager bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			result, err := syncer.Sync(cfg, syncer.Options{
				Direction:       types.DirectionFromBool(fromManager),
				DryRun:          dryRun,
				ManagerOverride: opts.manager,
			})
			if err != nil {
				return fmt.Errorf(MsgErrSync, err)
			}

			// Per-pair failures are part of the report, not a failed run
			newRenderer(cmd.OutOrStdout()).RenderSync(result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fromManager, "from-manager", "f", false, MsgFlagFromManager)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)

	return cmd
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			result, err := syncer.Status(cfg, syncer.Options{ManagerOverride: opts.manager})
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}

			newRenderer(cmd.OutOrStdout()).RenderStatus(result)
			return nil
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfigContent(config.Format(format))
			if err != nil {
				return fmt.Errorf(MsgErrGenConfig, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatTOML), MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(config.FormatTOML), string(config.FormatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// newRenderer picks terminal styling only when w is a terminal
func newRenderer(w io.Writer) *style.Renderer {
	format := style.FormatText
	if f, ok := w.(*os.File); ok {
		format = style.DetectFormat(f)
	}
	return style.NewRenderer(w, format)
}
