// Command validate provides a small CLI that validates relay settings JSON
// files. It checks:
//   - JSON structure
//   - Host/port values the server can bind to
//   - Transport tuning (write/pong deadlines, message size, send buffer)
//
// With no arguments it validates ./settings.json; otherwise each argument is
// validated in turn.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karimJD/ws-backend/config"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateSettings loads and validates a single settings JSON file.
func validateSettings(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	settings := config.Default()
	if err := json.Unmarshal(data, settings); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := settings.Validate(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if settings.WriteWaitSeconds >= settings.PongWaitSeconds {
		result.Errors = append(result.Errors, fmt.Sprintf("Note: write_wait_seconds (%d) >= pong_wait_seconds (%d); slow writers may be dropped before their pong arrives", settings.WriteWaitSeconds, settings.PongWaitSeconds))
	}

	// Add informational data
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Address: %s", settings.Addr()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Write/pong deadlines: %v / %v", settings.WriteWait(), settings.PongWait()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Max message size: %d bytes", settings.MaxMessageSize))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Send buffer: %d frames", settings.SendBuffer))

	return result
}

// main validates the given settings files (or ./settings.json), printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	files := os.Args[1:]
	if len(files) == 0 {
		files = []string{"settings.json"}
	}

	allValid := true
	for _, file := range files {
		result := validateSettings(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All settings files are valid!")
	} else {
		fmt.Println("❌ Some settings files have errors")
		os.Exit(1)
	}
}
