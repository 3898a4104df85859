package discovery

import "fmt"

// InvalidConventionError is returned for conventions that cannot be used to read a tree.
type InvalidConventionError struct {
	Reason string
}

func (err InvalidConventionError) Error() string {
	return fmt.Sprintf("invalid file conventions: %s", err.Reason)
}
