package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/hashbrr/hashbrr/internal/checksum"
	"github.com/hashbrr/hashbrr/internal/display"
	"github.com/hashbrr/hashbrr/internal/profile"
	"github.com/hashbrr/hashbrr/internal/utils"
)

// sumOptions encapsulates all command-line flag values for the sum command
type sumOptions struct {
	outputPath      string
	profileName     string
	profileFile     string
	includePatterns []string
	excludePatterns []string
	workers         int
	showFiles       bool
	verbose         bool
	quiet           bool
}

var sumOpts = sumOptions{}

var sumCmd = &cobra.Command{
	Use:   "sum [path]...",
	Short: "Compute SHA-1 checksums",
	Long: `Compute SHA-1 checksums of files and directories.
Directories are hashed recursively. With no arguments, or with "-",
hashes standard input. Output uses the sha1sum line format, so the
result can be verified with "hashbrr check" or sha1sum -c.
Supports profiles for commonly used settings.`,
	RunE:                       runSum,
	DisableFlagsInUseLine:      true,
	SuggestionsMinimumDistance: 1,
	SilenceUsage:               true,
}

func init() {
	sumCmd.Flags().SortFlags = false
	sumCmd.Flags().BoolP("help", "h", false, "help for sum")
	if err := sumCmd.Flags().MarkHidden("help"); err != nil {
		// This is initialization code, so we should panic
		panic(fmt.Errorf("failed to mark help flag as hidden: %w", err))
	}

	sumCmd.Flags().StringVarP(&sumOpts.profileName, "profile", "P", "", "use profile from config")
	sumCmd.Flags().StringVar(&sumOpts.profileFile, "profile-file", "", "profile config file (default ~/.config/hashbrr/profiles.yaml)")
	sumCmd.Flags().StringVarP(&sumOpts.outputPath, "output", "o", "", "write checksums to a manifest file instead of stdout (a directory gets a filename derived from the input)")
	sumCmd.Flags().IntVarP(&sumOpts.workers, "workers", "j", 0, "number of hashing workers (automatic if not specified)")
	sumCmd.Flags().StringArrayVarP(&sumOpts.excludePatterns, "exclude", "", nil, "exclude files matching these patterns (e.g., \"*.nfo\" --exclude \"*.jpg\")")
	sumCmd.Flags().StringArrayVarP(&sumOpts.includePatterns, "include", "", nil, "include only files matching these patterns (e.g., \"*.mkv\" --include \"*.mp4\")")
	sumCmd.Flags().BoolVarP(&sumOpts.showFiles, "files", "f", false, "list files before hashing")
	sumCmd.Flags().BoolVarP(&sumOpts.verbose, "verbose", "v", false, "be verbose")
	sumCmd.Flags().BoolVar(&sumOpts.quiet, "quiet", false, "reduced output mode (prints only checksum lines)")

	sumCmd.Flags().String("cpuprofile", "", "write cpu profile to file (development flag)")

	sumCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} /path/to/content [flags]

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)
}

func runSum(cmd *cobra.Command, args []string) error {
	if cpuprofile, _ := cmd.Flags().GetString("cpuprofile"); cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := applyProfile(cmd); err != nil {
		return err
	}

	disp := display.NewDisplay(display.NewFormatter(sumOpts.verbose))
	disp.SetQuiet(sumOpts.quiet)

	// stdin mode
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		digest, _, err := checksum.HashStream(os.Stdin)
		if err != nil {
			return err
		}
		fmt.Println(checksum.FormatLine(digest, "-"))
		return nil
	}

	start := time.Now()

	entries, err := checksum.CollectFiles(args, sumOpts.includePatterns, sumOpts.excludePatterns)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no files to hash")
	}

	if sumOpts.showFiles {
		disp.ShowFiles(entries)
	}

	results, err := checksum.HashFiles(entries, checksum.Options{Workers: sumOpts.workers}, disp)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			disp.ShowError(res.Err.Error())
			failed++
		}
	}

	if manifestPath := resolveManifestPath(sumOpts.outputPath, args); manifestPath != "" {
		f, err := os.Create(manifestPath)
		if err != nil {
			return fmt.Errorf("could not create manifest %q: %w", manifestPath, err)
		}
		defer f.Close()

		if err := checksum.WriteManifest(f, results); err != nil {
			return fmt.Errorf("could not write manifest: %w", err)
		}
		if !sumOpts.quiet {
			disp.ShowMessage(fmt.Sprintf("wrote %s", manifestPath))
		}
	} else {
		disp.ShowChecksumResults(results, time.Since(start))
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be hashed", failed)
	}
	return nil
}

// resolveManifestPath returns the manifest file to write, or "" for
// stdout output. An output path naming a directory gets a filename
// derived from the first input, e.g. "hashbrr sum photos -o /backups"
// writes /backups/photos.sha1.
func resolveManifestPath(outputPath string, args []string) string {
	if outputPath == "" {
		return ""
	}
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		return filepath.Join(outputPath, utils.DefaultManifestName(args[0]))
	}
	return outputPath
}

// applyProfile merges profile config into flags the user didn't set
// explicitly.
func applyProfile(cmd *cobra.Command) error {
	if sumOpts.profileName == "" {
		return nil
	}

	profilePath, err := profile.FindProfileFile(sumOpts.profileFile)
	if err != nil {
		return err
	}

	config, err := profile.Load(profilePath)
	if err != nil {
		return err
	}

	opts, err := config.GetProfile(sumOpts.profileName)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("workers") && opts.Workers > 0 {
		sumOpts.workers = opts.Workers
	}
	if !cmd.Flags().Changed("output") && opts.OutputPath != "" {
		sumOpts.outputPath = opts.OutputPath
	}
	if !cmd.Flags().Changed("include") && len(opts.IncludePatterns) > 0 {
		sumOpts.includePatterns = opts.IncludePatterns
	}
	if !cmd.Flags().Changed("exclude") && len(opts.ExcludePatterns) > 0 {
		sumOpts.excludePatterns = opts.ExcludePatterns
	}
	if !cmd.Flags().Changed("verbose") {
		sumOpts.verbose = opts.Verbose
	}
	if !cmd.Flags().Changed("quiet") {
		sumOpts.quiet = opts.Quiet
	}
	return nil
}
