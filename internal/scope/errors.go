package scope

import (
	"fmt"

	"github.com/keyboardio/testplan/internal/errors"
)

// RootNotDirectoryError is returned when the testing tree root is missing or not a directory.
type RootNotDirectoryError struct {
	Path string
}

func (err RootNotDirectoryError) Error() string {
	return fmt.Sprintf("testing tree root %s is not a directory", err.Path)
}

// ExternalDirNotDirectoryError is returned when a scope's external-reference entry is a file.
type ExternalDirNotDirectoryError struct {
	Path string
}

func (err ExternalDirNotDirectoryError) Error() string {
	return fmt.Sprintf("external specification %s is not a directory", err.Path)
}

// ExternalDirConflictError is returned when a scope with an external-reference directory contains
// anything besides it and the test trigger.
type ExternalDirConflictError struct {
	Path  string
	Entry string
}

func (err ExternalDirConflictError) Error() string {
	return fmt.Sprintf("directory %s contains an external specification and also %s; only the test trigger may be placed next to an external specification", err.Path, err.Entry)
}

// MissingAttributeError describes one incomplete test scope.
type MissingAttributeError struct {
	Path      string
	Attribute string
}

func (err MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: no %s defined", err.Path, err.Attribute)
}

// MissingAttributesError holds every incomplete test scope found in the tree.
type MissingAttributesError struct {
	Errs *errors.MultiError
}

func (err MissingAttributesError) Error() string {
	return fmt.Sprintf("the testing tree is incomplete, %s", err.Errs.Error())
}

func (err MissingAttributesError) Unwrap() []error {
	return err.Errs.WrappedErrors()
}

// DuplicateNameError is returned when two test scopes resolve to the same global name.
type DuplicateNameError struct {
	Name       string
	FirstPath  string
	SecondPath string
}

func (err DuplicateNameError) Error() string {
	return fmt.Sprintf("tests in %s and %s have the same name %q, please give every test its own name", err.FirstPath, err.SecondPath, err.Name)
}
