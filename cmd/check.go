package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hashbrr/hashbrr/internal/checksum"
	"github.com/hashbrr/hashbrr/internal/display"
)

var (
	checkVerbose bool
	checkQuiet   bool
	checkRoot    string
	checkWorkers int
)

var checkCmd = &cobra.Command{
	Use:   "check <manifest-file>",
	Short: "Verify files against a checksum manifest",
	Long: `Checks that the files named in a checksum manifest still hash to the
recorded digests. The manifest uses the sha1sum line format, so files
produced by "hashbrr sum" or by sha1sum itself both work. Relative
paths are resolved against the manifest's directory unless --root is
given.`,
	Args:                       cobra.ExactArgs(1),
	RunE:                       runCheck,
	DisableFlagsInUseLine:      true,
	SuggestionsMinimumDistance: 1,
	SilenceUsage:               true,
}

func init() {
	checkCmd.Flags().SortFlags = false
	checkCmd.Flags().BoolP("help", "h", false, "help for check")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "show OK lines for every verified file")
	checkCmd.Flags().BoolVar(&checkQuiet, "quiet", false, "reduced output mode (prints only completion percentage)")
	checkCmd.Flags().StringVar(&checkRoot, "root", "", "resolve relative manifest paths against this directory")
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "j", 0, "number of hashing workers (automatic if not specified)")
	checkCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} <manifest-file> [flags]

Arguments:
  manifest-file   Path to the checksum manifest (sha1sum format)

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)
}

func runCheck(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]

	if _, err := os.Stat(manifestPath); err != nil {
		return fmt.Errorf("invalid manifest path %q: %w", manifestPath, err)
	}
	if checkRoot != "" {
		if _, err := os.Stat(checkRoot); err != nil {
			return fmt.Errorf("invalid root path %q: %w", checkRoot, err)
		}
	}

	start := time.Now()

	disp := display.NewDisplay(display.NewFormatter(checkVerbose))
	disp.SetQuiet(checkQuiet)
	if !checkQuiet {
		fmt.Fprintf(os.Stdout, "\nVerifying %s...\n", filepath.Base(manifestPath))
	}

	opts := checksum.VerifyOptions{
		ManifestPath: manifestPath,
		Root:         checkRoot,
		Workers:      checkWorkers,
		Verbose:      checkVerbose,
		Quiet:        checkQuiet,
	}

	result, err := checksum.Verify(opts, disp)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if checkQuiet {
		fmt.Printf("%.2f%%\n", result.Completion)
	} else {
		duration := time.Since(start)
		disp.ShowVerificationResult(result, duration)
	}

	if result.Bad > 0 || result.Missing > 0 {
		return fmt.Errorf("verification failed or incomplete")
	}

	return nil
}
