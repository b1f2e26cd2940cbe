package commands

import (
	"fmt"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// All commands share the same console output format
// ═══════════════════════════════════════════════════════════

// RunMetadata holds console header metadata for one CLI run
type RunMetadata struct {
	Task      string
	Grades    string
	Codebook  string
	OutputDir string
	Timestamp string
}

// PrintRunHeader prints a formatted run header
func PrintRunHeader(meta RunMetadata) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", meta.Task)
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Grades    : %s\n", meta.Grades)
	fmt.Printf("  Codebook  : %s\n", meta.Codebook)
	fmt.Printf("  Output    : %s\n", meta.OutputDir)
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("Triggered at %s\n", meta.Timestamp)
}

// PrintRunCompletion prints the completion message with the written path
func PrintRunCompletion(path string, duration float64) {
	fmt.Println()
	fmt.Printf("✅ Wrote %s in %.2fs\n", path, duration)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}
