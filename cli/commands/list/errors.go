package list

import "fmt"

// InvalidFormatError is returned for an unknown --format value.
type InvalidFormatError string

func (err InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format %q, valid values: %s, %s", string(err), FormatText, FormatJSON)
}
