// Package firmware models the firmware variants tests are run against: module descriptors and
// the build configurations that group them.
package firmware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Module describes one firmware component. Every field may be unset.
type Module struct {
	URL    Field
	Commit Field
	Name   Field
}

// Digest returns the lowercase hex SHA-256 over URL, Commit and Name, in that order.
func (module Module) Digest() string {
	h := sha256.New()

	module.URL.writeTo(h)
	module.Commit.writeTo(h)
	module.Name.writeTo(h)

	return hex.EncodeToString(h.Sum(nil))
}

// SameModule reports whether other is the same logical module, i.e. both names are set and equal.
func (module Module) SameModule(other Module) bool {
	return module.Name.IsSet() && other.Name.IsSet() && module.Name.Text() == other.Name.Text()
}

func (module Module) String() string {
	return fmt.Sprintf("module(name=%s url=%s commit=%s)", module.Name, module.URL, module.Commit)
}

// FileRef points at a file discovered in the testing tree. It is never mutated after creation.
type FileRef struct {
	Path string
}

// NewFileRef returns a reference to path.
func NewFileRef(path string) *FileRef {
	return &FileRef{Path: path}
}

// SamePath reports whether ref and other refer to the same file. Nil refs are equal only to each other.
func (ref *FileRef) SamePath(other *FileRef) bool {
	if ref == nil || other == nil {
		return ref == other
	}

	return ref.Path == other.Path
}

func (ref *FileRef) String() string {
	if ref == nil {
		return ""
	}

	return ref.Path
}

// BoardSource is the origin of the board definitions a build is compiled with.
type BoardSource struct {
	URL    Field
	Commit Field
}
