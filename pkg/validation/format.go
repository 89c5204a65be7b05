package validation

import (
	"fmt"

	"github.com/adlumen/budget-engine/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be %q or %q",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}
