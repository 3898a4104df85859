package scope

import (
	"context"
	"path/filepath"

	"github.com/keyboardio/testplan/internal/attr"
	"github.com/keyboardio/testplan/internal/discovery"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/pkg/log"
)

// Builder builds scope trees.
type Builder struct {
	finder *discovery.Finder
}

// NewBuilder returns a Builder reading directories through finder.
func NewBuilder(finder *discovery.Finder) *Builder {
	return &Builder{finder: finder}
}

// Build resolves every scope below root, each one after its parent. The first structural error
// aborts the build.
func (builder *Builder) Build(ctx context.Context, l log.Logger, root string) (*Tree, error) {
	root = filepath.Clean(root)

	if !builder.finder.IsDir(root) {
		return nil, errors.New(RootNotDirectoryError{Path: root})
	}

	tree := &Tree{ByPath: make(map[string]*Node)}
	resolver := NewResolver(builder.finder, new(attr.Sequence))

	rootNode, err := builder.build(ctx, l, resolver, tree, root, nil)
	if err != nil {
		return nil, err
	}

	tree.Root = rootNode

	l.Debugf("Resolved %d scopes below %s", len(tree.Nodes), root)

	return tree, nil
}

func (builder *Builder) build(ctx context.Context, l log.Logger, resolver *Resolver, tree *Tree, path string, parent *Node) (*Node, error) {
	node, err := resolver.Resolve(ctx, l, path, parent)
	if err != nil {
		return nil, err
	}

	tree.Nodes = append(tree.Nodes, node)
	tree.ByPath[path] = node

	dirs, err := builder.finder.SubDirs(path)
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		child, err := builder.build(ctx, l, resolver, tree, dir, node)
		if err != nil {
			return nil, err
		}

		node.Children = append(node.Children, child)
	}

	return node, nil
}
