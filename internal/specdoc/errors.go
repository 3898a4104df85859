package specdoc

import (
	"fmt"
	"strings"
)

// MalformedDocumentError is returned for a document that is not valid YAML or does not match the schema.
type MalformedDocumentError struct {
	Path    string
	Reasons []string
}

func (err *MalformedDocumentError) Error() string {
	path := err.Path
	if path == "" {
		path = "specification document"
	}

	return fmt.Sprintf("malformed %s: %s", path, strings.Join(err.Reasons, "; "))
}
