package scope

import (
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/pkg/log"
)

// CheckSubtree checks every test scope below and including node, children first. It logs each
// missing attribute and keeps going; the result is false if anything is missing.
func CheckSubtree(l log.Logger, node *Node) bool {
	return checkSubtree(l, node, func(error) {})
}

// Validate checks the whole tree and returns a MissingAttributesError listing every problem.
func Validate(l log.Logger, tree *Tree) error {
	var errs *errors.MultiError

	if checkSubtree(l, tree.Root, func(err error) { errs = errs.Append(err) }) {
		return nil
	}

	return errors.New(MissingAttributesError{Errs: errs})
}

func checkSubtree(l log.Logger, node *Node, report func(error)) bool {
	ok := true

	for _, child := range node.Children {
		if !checkSubtree(l, child, report) {
			ok = false
		}
	}

	if !node.GeneratesTests() {
		return ok
	}

	missing := func(attribute string) {
		err := MissingAttributeError{Path: node.Path, Attribute: attribute}

		l.WithField(log.FieldKeyPrefix, node.Path).Errorf("No %s defined for test", attribute)
		report(err)

		ok = false
	}

	if !node.Name.IsSet() {
		missing("name")
	}

	if !node.Description.IsSet() {
		missing("description")
	}

	if !node.Driver.IsSet() {
		missing("driver")
	}

	switch {
	case node.Build == nil:
		missing("firmware build")
	case !node.Build.Valid():
		missing("firmware sketch")
	}

	return ok
}
