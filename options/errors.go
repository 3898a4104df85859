package options

import "fmt"

// InvalidLogFormatError is returned for an unsupported log format.
type InvalidLogFormatError string

func (err InvalidLogFormatError) Error() string {
	return fmt.Sprintf("invalid log format %q, supported formats: %s, %s", string(err), LogFormatText, LogFormatJSON)
}

// InvalidConfigFileError is returned when a config file cannot be decoded.
type InvalidConfigFileError struct {
	Path string
	Err  error
}

func (err InvalidConfigFileError) Error() string {
	return fmt.Sprintf("invalid config file %s: %v", err.Path, err.Err)
}

func (err InvalidConfigFileError) Unwrap() error {
	return err.Err
}
