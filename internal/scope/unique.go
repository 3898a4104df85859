package scope

import (
	"github.com/keyboardio/testplan/internal/errors"
)

// CheckUniqueness maps the global name of every test scope to its node. The first name seen
// twice, in pre-order, is an error naming both scopes.
func CheckUniqueness(tree *Tree) (map[string]*Node, error) {
	byName := make(map[string]*Node)

	for _, node := range tree.TestNodes() {
		name := node.GlobalName()

		if first, ok := byName[name]; ok {
			return nil, errors.New(DuplicateNameError{
				Name:       name,
				FirstPath:  first.Path,
				SecondPath: node.Path,
			})
		}

		byName[name] = node
	}

	return byName, nil
}
