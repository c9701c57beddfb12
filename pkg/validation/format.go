// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/sum-match/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV && format != constants.OutputFormatJSON {
		return fmt.Errorf("expected output format of %s, %s, or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
	}
	return nil
}
