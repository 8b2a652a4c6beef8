package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotsync/cmd/dotsync"
	"github.com/arthur-debert/dotsync/pkg/style"
)

func main() {
	rootCmd := dotsync.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		msg := fmt.Sprintf("Error: %v", err)
		if style.DetectFormat(os.Stderr) == style.FormatTerminal {
			msg = style.ErrorStyle.Render(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
