package firmware

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/huandu/go-clone"
)

// Build is one firmware variant: an ordered set of modules unique by name, a sketch and a board source.
//
// A Build may be shared by many scopes. Only the scope that created it, or the one that cloned it,
// may mutate it.
type Build struct {
	Modules      []Module
	Sketch       *FileRef
	BoardsURL    Field
	BoardsCommit Field

	// Origin is the path of the scope that created or cloned this build.
	Origin string
	// ID is assigned to canonical builds by deduplication; 0 until then.
	ID int
}

// NewBuild returns an empty build owned by the scope at origin.
func NewBuild(origin string) *Build {
	return &Build{Origin: origin}
}

// AddModule replaces the module with the same logical name in place, or appends module.
func (build *Build) AddModule(module Module) {
	for i := range build.Modules {
		if build.Modules[i].SameModule(module) {
			build.Modules[i] = module
			return
		}
	}

	build.Modules = append(build.Modules, module)
}

// ContainsModule reports whether a module with exactly the same digest is part of the build.
func (build *Build) ContainsModule(module Module) bool {
	digest := module.Digest()

	for _, existing := range build.Modules {
		if existing.Digest() == digest {
			return true
		}
	}

	return false
}

// Clone returns a copy of the build owned by the scope at origin. The module list is copied, the
// immutable sketch reference is shared, and the ID is not carried over.
func (build *Build) Clone(origin string) *Build {
	var modules []Module
	if build.Modules != nil {
		modules = clone.Clone(build.Modules).([]Module)
	}

	return &Build{
		Modules:      modules,
		Sketch:       build.Sketch,
		BoardsURL:    build.BoardsURL,
		BoardsCommit: build.BoardsCommit,
		Origin:       origin,
	}
}

// Valid reports whether the build can be compiled, which requires a sketch.
func (build *Build) Valid() bool {
	return build.Sketch != nil
}

// Digest returns the lowercase hex SHA-256 identifying the build's content. Module order does not
// affect it: module digests are sorted before hashing, followed by the boards URL, the boards commit
// and the sketch path.
func (build *Build) Digest() string {
	digests := make([]string, 0, len(build.Modules))
	for _, module := range build.Modules {
		digests = append(digests, module.Digest())
	}

	slices.Sort(digests)

	h := sha256.New()
	for _, digest := range digests {
		h.Write([]byte(digest))
	}

	build.BoardsURL.writeTo(h)
	build.BoardsCommit.writeTo(h)

	sketch := Unset()
	if build.Sketch != nil {
		sketch = Set(build.Sketch.Path)
	}

	sketch.writeTo(h)

	return hex.EncodeToString(h.Sum(nil))
}
