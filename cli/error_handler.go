package cli

import (
	"fmt"
	"os"

	"github.com/miralabs/mira/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a mira.yml or pass --config.\n")
		return err

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(os.Stderr, "❌ Configuration is invalid: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'mira config-layers' to inspect the merged configuration.\n")
		return err

	case errors.ErrCodeStateCorrupt:
		if miraErr, ok := err.(*errors.MiraError); ok {
			fmt.Fprintf(os.Stderr, "❌ Saved setup state could not be read (key '%v')\n", miraErr.Details["key"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Saved setup state could not be read\n")
		}
		fmt.Fprintf(os.Stderr, "The wizard will start fresh the next time you run 'mira setup'.\n")
		return err

	case errors.ErrCodeMediaNotFound:
		if miraErr, ok := err.(*errors.MiraError); ok {
			fmt.Fprintf(os.Stderr, "❌ Media file not found: %v\n", miraErr.Details["uri"])
		}
		return err

	case errors.ErrCodeMediaCopyFailed:
		fmt.Fprintf(os.Stderr, "❌ Could not copy media into the library: %v\n", err)
		return err

	case errors.ErrCodeImportWatch:
		if miraErr, ok := err.(*errors.MiraError); ok {
			fmt.Fprintf(os.Stderr, "❌ Cannot watch the import directory '%v'\n", miraErr.Details["dir"])
		}
		fmt.Fprintf(os.Stderr, "Check media.import_dir in mira.yml.\n")
		return err

	case errors.ErrCodeBackendUnavailable:
		if miraErr, ok := err.(*errors.MiraError); ok {
			fmt.Fprintf(os.Stderr, "❌ Backend unreachable at %v\n", miraErr.Details["endpoint"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Backend unreachable\n")
		}
		fmt.Fprintf(os.Stderr, "Check backend.url in mira.yml, or run with --demo.\n")
		return err

	case errors.ErrCodeHistoryOpen:
		if miraErr, ok := err.(*errors.MiraError); ok {
			fmt.Fprintf(os.Stderr, "❌ Cannot open the chat history database at %v\n", miraErr.Details["path"])
		}
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if miraErr, ok := err.(*errors.MiraError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", miraErr.ToJSON())
			}
		}
		return err
	}
}
