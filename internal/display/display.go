package display

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/fatih/color"
	progressbar "github.com/schollz/progressbar/v3"

	"github.com/hashbrr/hashbrr/internal/checksum"
	"github.com/hashbrr/hashbrr/internal/utils"
)

type Display struct {
	formatter *Formatter
	bar       *progressbar.ProgressBar
	quiet     bool
}

// Ensure Display implements all required interfaces
var _ Displayer = (*Display)(nil)
var _ ResultDisplayer = (*Display)(nil)
var _ checksum.Displayer = (*Display)(nil)

func NewDisplay(formatter *Formatter) *Display {
	return &Display{
		formatter: formatter,
	}
}

var (
	magenta    = color.New(color.FgMagenta).SprintFunc()
	yellow     = color.New(color.FgYellow).SprintFunc()
	success    = color.New(color.FgGreen).SprintFunc()
	label      = color.New(color.FgCyan).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
)

func (d *Display) ShowProgress(totalBytes int64) {
	if d.quiet {
		return
	}
	fmt.Println()
	d.bar = progressbar.NewOptions64(totalBytes,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription("[cyan][bold]Hashing files...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (d *Display) UpdateProgress(completedBytes int64, hashrate float64) {
	if d.quiet {
		return
	}
	if d.bar != nil {
		if err := d.bar.Set64(completedBytes); err != nil {
			log.Printf("failed to update progress bar: %v", err)
		}

		if hashrate > 0 {
			description := fmt.Sprintf("[cyan][bold]Hashing files...[reset] [%.2f MB/s]", hashrate/1024/1024)
			d.bar.Describe(description)
		}
	}
}

func (d *Display) FinishProgress() {
	if d.quiet {
		return
	}
	if d.bar != nil {
		if err := d.bar.Finish(); err != nil {
			log.Printf("failed to finish progress bar: %v", err)
		}
		fmt.Println()
	}
}

func (d *Display) ShowFiles(entries []checksum.FileEntry) {
	if d.quiet {
		return
	}

	fmt.Printf("\n%s\n", magenta("Files being hashed:"))
	for i, entry := range entries {
		prefix := "  ├─"
		if i == len(entries)-1 {
			prefix = "  └─"
		}
		fmt.Printf("%s %s (%s)\n",
			prefix,
			success(filepath.Base(entry.Path)),
			label(humanize.IBytes(uint64(entry.Size))))
	}
	fmt.Println()
}

func (d *Display) ShowMessage(msg string) {
	if d.quiet {
		return
	}
	fmt.Printf("%s %s\n", success("\nInfo:"), msg)
}

func (d *Display) ShowError(msg string) {
	fmt.Println(errorColor(msg))
}

func (d *Display) ShowWarning(msg string) {
	if d.quiet {
		return
	}
	fmt.Printf("%s %s\n", yellow("Warning:"), msg)
}

func (d *Display) SetQuiet(quiet bool) {
	d.quiet = quiet
}

// ShowChecksumResults prints one manifest line per successfully hashed
// file, then a summary block unless quiet.
func (d *Display) ShowChecksumResults(results []checksum.FileResult, durationInput interface{}) {
	duration, ok := durationInput.(time.Duration)
	if !ok {
		return
	}

	failed := 0
	var totalSize int64
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		fmt.Println(checksum.FormatLine(res.Digest, res.Path))
		totalSize += res.Size
	}

	if d.quiet {
		return
	}

	fmt.Printf("\n%s\n", magenta("Checksum summary:"))
	fmt.Printf("  %-13s %d\n", label("Files:"), len(results)-failed)
	if failed > 0 {
		fmt.Printf("  %-13s %s\n", label("Failed:"), errorColor(failed))
	}
	fmt.Printf("  %-13s %s\n", label("Total size:"), d.formatter.FormatBytes(totalSize))
	fmt.Printf("  %-13s %s\n", label("Elapsed:"), d.formatter.FormatDuration(duration))
	fmt.Printf("  %-13s %s\n", label("Hash rate:"), utils.FormatHashRate(totalSize, duration))
}

// ShowVerificationResult prints per-file status lines (verbose shows OK
// lines too) followed by the run summary.
func (d *Display) ShowVerificationResult(result *checksum.VerificationResult, durationInput interface{}) {
	duration, ok := durationInput.(time.Duration)
	if !ok {
		return
	}

	for _, entry := range result.Entries {
		switch entry.Status {
		case checksum.StatusOK:
			if d.formatter.verbose {
				fmt.Printf("%s: %s\n", entry.Path, success("OK"))
			}
		case checksum.StatusFailed:
			fmt.Printf("%s: %s\n", entry.Path, errorColor("FAILED"))
		case checksum.StatusMissing:
			fmt.Printf("%s: %s\n", entry.Path, yellow("MISSING"))
		}
	}

	fmt.Printf("\n%s\n", magenta("Verification results:"))
	fmt.Printf("  %-13s %d\n", label("Checked:"), result.Checked)
	fmt.Printf("  %-13s %s\n", label("Good:"), success(result.Good))
	if result.Bad > 0 {
		fmt.Printf("  %-13s %s\n", label("Bad:"), errorColor(result.Bad))
	}
	if result.Missing > 0 {
		fmt.Printf("  %-13s %s\n", label("Missing:"), yellow(result.Missing))
	}
	fmt.Printf("  %-13s %.2f%%\n", label("Completion:"), result.Completion)
	fmt.Printf("  %-13s %s\n", label("Total size:"), d.formatter.FormatBytes(result.TotalBytes))
	fmt.Printf("  %-13s %s\n", label("Elapsed:"), d.formatter.FormatDuration(duration))
	fmt.Printf("  %-13s %s\n", label("Hash rate:"), utils.FormatHashRate(result.TotalBytes, duration))
}

type Formatter struct {
	verbose bool
}

func NewFormatter(verbose bool) *Formatter {
	return &Formatter{verbose: verbose}
}

func (f *Formatter) FormatBytes(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

func (f *Formatter) FormatDuration(dur time.Duration) string {
	if dur < time.Second {
		return fmt.Sprintf("%dms", dur.Milliseconds())
	}
	return humanize.RelTime(time.Now().Add(-dur), time.Now(), "", "")
}
