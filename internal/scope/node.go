// Package scope builds the tree of test scopes from a testing directory tree.
//
// Each directory is a scope. A scope inherits every attribute of its parent and may override
// them with files found in its own directory. Builds are shared with the parent until a scope
// changes something, at which point the scope clones the build and owns the clone.
package scope

import (
	"github.com/keyboardio/testplan/internal/attr"
	"github.com/keyboardio/testplan/internal/firmware"
)

// Node is one resolved scope.
type Node struct {
	// Path is the scope directory.
	Path string
	// SourceDir is where the scope's files were read from: Path, or its external-reference directory.
	SourceDir string

	Parent   *Node
	Children []*Node

	Name        attr.Value[string]
	Description attr.Value[string]
	DriverFlags attr.Value[string]
	BoardSource attr.Value[firmware.BoardSource]
	Driver      attr.Value[*firmware.FileRef]
	Sketch      attr.Value[*firmware.FileRef]

	// Build is shared with the parent unless HasDedicatedBuild is set.
	Build             *firmware.Build
	HasDedicatedBuild bool

	// IsTestTarget is set by a test trigger in the scope directory.
	IsTestTarget bool

	// Canonical is the deduplicated build the scope's tests run against. Set by deduplication.
	Canonical *firmware.Build
}

// GeneratesTests reports whether a test is generated at the scope: leaves always, inner scopes
// only when triggered.
func (node *Node) GeneratesTests() bool {
	return node.IsTestTarget || len(node.Children) == 0
}

// EnsureDedicatedBuild makes the scope own its build, cloning the shared one on the first call.
func (node *Node) EnsureDedicatedBuild() {
	if node.HasDedicatedBuild {
		return
	}

	node.Build = node.Build.Clone(node.Path)
	node.HasDedicatedBuild = true
}

// GlobalName is the dotted list of names defined along the path from the root. A scope that
// inherits its name adds nothing; a scope that defines one adds it, even when the text equals
// the inherited name.
func (node *Node) GlobalName() string {
	if node.Parent == nil {
		return node.Name.Value
	}

	parentName := node.Parent.GlobalName()

	if node.Name.SameDefinition(node.Parent.Name) {
		return parentName
	}

	return parentName + "." + node.Name.Value
}

// Tree is the result of building a testing tree.
type Tree struct {
	Root *Node
	// Nodes lists every scope in pre-order.
	Nodes []*Node
	// ByPath maps scope directories to their nodes.
	ByPath map[string]*Node
}

// TestNodes returns the scopes generating tests, in pre-order.
func (tree *Tree) TestNodes() []*Node {
	var nodes []*Node

	for _, node := range tree.Nodes {
		if node.GeneratesTests() {
			nodes = append(nodes, node)
		}
	}

	return nodes
}
