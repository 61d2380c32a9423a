package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/fatih/color"
)

// Tier label constants for display.
const (
	DominantValue   = "Dominant"
	SupportingValue = "Supporting"
	LesserValue     = "Lesser"
)

// Color variables for console output.
var (
	DominantColor   = color.New(color.FgGreen, color.Bold) // dominantColor marks leading strengths.
	SupportingColor = color.New(color.FgYellow)            // supportingColor marks the middle band.
	LesserColor     = color.New(color.FgCyan)              // lesserColor marks low-priority signal.
)

// GetPlainTierLabel returns the plain text label for a tier. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainTierLabel(tier schema.Tier) string {
	switch tier {
	case schema.TierDominant:
		return DominantValue
	case schema.TierLesser:
		return LesserValue
	default:
		return SupportingValue
	}
}

// GetColorTierLabel returns a colored tier label for console output (table).
// It uses GetPlainTierLabel to determine the string, then applies the color.
func GetColorTierLabel(tier schema.Tier) string {
	text := GetPlainTierLabel(tier)

	switch text {
	case DominantValue:
		return DominantColor.Sprint(text)
	case LesserValue:
		return LesserColor.Sprint(text)
	default: // "Supporting"
		return SupportingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "Warning %s\n", msg)
	}
}

// GetStoreDBFilePath returns the path to the SQLite DB file used by the
// default calibration store backend.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".strengths_store.db"
	}
	return filepath.Join(homeDir, ".strengths_store.db")
}
