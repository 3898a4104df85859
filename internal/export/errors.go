package export

import (
	"fmt"
	"strings"
)

// UnknownFormatError is returned for an output format no writer exists for.
type UnknownFormatError string

func (err UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q, supported formats: %s", string(err), strings.Join(Formats(), ", "))
}

// InvalidTargetError is returned for an output target not written as `format=path`.
type InvalidTargetError string

func (err InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid output %q, expected format=path", string(err))
}

// UnknownIfExistsError is returned for an unknown if_exists value.
type UnknownIfExistsError string

func (err UnknownIfExistsError) Error() string {
	return fmt.Sprintf("%q is not a valid value for if_exists, expected %s, %s or %s", string(err), ExistsOverwriteStr, ExistsSkipStr, ExistsErrorStr)
}

// FileExistsError is returned when an output file exists and if_exists is "error".
type FileExistsError struct {
	Path string
}

func (err FileExistsError) Error() string {
	return fmt.Sprintf("can not generate %s: the file already exists", err.Path)
}

// DuplicateTargetError is returned when several formats are written to the same output path.
type DuplicateTargetError struct {
	Path    string
	Formats []string
}

func (err DuplicateTargetError) Error() string {
	return fmt.Sprintf("output %s is given for more than one format: %s", err.Path, strings.Join(err.Formats, ", "))
}
