package export

import (
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/keyboardio/testplan/pkg/log"
)

// IfExists decides what happens to an output file that already exists.
type IfExists int

const (
	ExistsOverwrite IfExists = iota
	ExistsSkip
	ExistsError
)

const (
	ExistsOverwriteStr = "overwrite"
	ExistsSkipStr      = "skip"
	ExistsErrorStr     = "error"
)

// IfExistsFromString converts a string representation of if_exists into the enum, returning an error if it
// is not set to one of the known values.
func IfExistsFromString(val string) (IfExists, error) {
	switch val {
	case ExistsOverwriteStr, "":
		return ExistsOverwrite, nil
	case ExistsSkipStr:
		return ExistsSkip, nil
	case ExistsErrorStr:
		return ExistsError, nil
	}

	return ExistsOverwrite, errors.New(UnknownIfExistsError(val))
}

// writeFile writes data to the target path. If a file already exists there, the behavior depends
// on the target's IfExists:
// - ExistsError returns an error
// - ExistsSkip leaves the file alone
// - ExistsOverwrite replaces it
func writeFile(l log.Logger, fs vfs.FS, target Target, data []byte) error {
	exists, err := vfs.FileExists(fs, target.Path)
	if err != nil {
		return err
	}

	if exists {
		switch target.IfExists {
		case ExistsError:
			return errors.New(FileExistsError{Path: target.Path})
		case ExistsSkip:
			l.Infof("The file %s already exists and if_exists is set to %q. Will not regenerate file.", target.Path, ExistsSkipStr)
			return nil
		case ExistsOverwrite:
			l.Debugf("The file %s already exists and if_exists is set to %q. Regenerating file.", target.Path, ExistsOverwriteStr)
		}
	}

	if err := vfs.WriteFile(fs, target.Path, data, vfs.DefaultFilePerm); err != nil {
		return err
	}

	l.Infof("Generated %s file %s", target.Format, target.Path)

	return nil
}
