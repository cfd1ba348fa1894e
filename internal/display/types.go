package display

import "github.com/hashbrr/hashbrr/internal/checksum"

// Displayer defines an interface for display functionality
type Displayer interface {
	ShowProgress(totalBytes int64)
	UpdateProgress(completedBytes int64, hashrate float64)
	FinishProgress()
	ShowFiles(entries []checksum.FileEntry)
	ShowMessage(msg string)
	ShowError(msg string)
	ShowWarning(msg string)
	SetQuiet(quiet bool)
}

// ResultDisplayer defines an interface for displaying checksum results
type ResultDisplayer interface {
	ShowChecksumResults(results []checksum.FileResult, duration interface{})
	ShowVerificationResult(result *checksum.VerificationResult, duration interface{})
}
