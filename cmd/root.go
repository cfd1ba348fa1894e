package cmd

import (
	"github.com/spf13/cobra"
)

const banner = `.__                .__     ___.
|  |__ _____    ___|  |__  \_ |_________ _______
|  |  \\__  \  /  ___/  |  \ | __ \_  __ \_  __ \
|   Y  \/ __ \_\___ \|   Y  \| \_\ \  | \/|  | \/
|___|  (____  /____  >___|  /|___  /__|   |__|
     \/     \/     \/     \/     \/              `

var rootCmd = &cobra.Command{
	Use:   "hashbrr",
	Short: "A tool to compute and verify SHA-1 checksums",
	Long:  banner + "\n\nhashbrr computes and verifies SHA-1 checksums of files, directories and stdin.",
}

func init() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(sumCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

const commonUsageTemplate = `Usage:
  {{.CommandPath}} [command]

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
`

// Execute configures and runs the root command.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = false
	rootCmd.SetUsageTemplate(commonUsageTemplate)
	return rootCmd.Execute()
}
