package scope

import (
	"context"
	"path/filepath"

	"github.com/keyboardio/testplan/internal/attr"
	"github.com/keyboardio/testplan/internal/discovery"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/firmware"
	"github.com/keyboardio/testplan/internal/specdoc"
	"github.com/keyboardio/testplan/pkg/log"
)

// Resolver resolves single scopes. All values it creates are stamped from one sequence.
type Resolver struct {
	finder *discovery.Finder
	seq    *attr.Sequence
}

// NewResolver returns a Resolver reading scopes through finder.
func NewResolver(finder *discovery.Finder, seq *attr.Sequence) *Resolver {
	return &Resolver{finder: finder, seq: seq}
}

// Resolve creates the node for the scope at path. parent, when given, must be fully resolved.
func (resolver *Resolver) Resolve(ctx context.Context, l log.Logger, path string, parent *Node) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.New(err)
	}

	l = l.WithField(log.FieldKeyPrefix, path)

	node := &Node{
		Path:   path,
		Parent: parent,
	}

	if parent == nil {
		node.Build = firmware.NewBuild(path)
		node.HasDedicatedBuild = true
	} else {
		node.Build = parent.Build
	}

	sourceDir, err := resolver.sourceDir(path)
	if err != nil {
		return nil, err
	}

	node.SourceDir = sourceDir

	if sourceDir != path {
		l.Debugf("Reading scope files from %s", sourceDir)
	}

	if parent != nil {
		node.Name = parent.Name
		node.Description = parent.Description
		node.DriverFlags = parent.DriverFlags
		node.BoardSource = parent.BoardSource
		node.Driver = parent.Driver
		node.Sketch = parent.Sketch
	}

	driverPath, hasDriver, err := resolver.finder.FindUnique(l, sourceDir, discovery.Driver)
	if err != nil {
		return nil, err
	}

	sketchPath, hasSketch, err := resolver.finder.FindUnique(l, sourceDir, discovery.Sketch)
	if err != nil {
		return nil, err
	}

	specPath, hasSpec, err := resolver.finder.FindUnique(l, sourceDir, discovery.Spec)
	if err != nil {
		return nil, err
	}

	if hasDriver {
		node.Driver = attr.New(resolver.seq, firmware.NewFileRef(driverPath), path)
	}

	if hasSketch {
		sketch := firmware.NewFileRef(sketchPath)

		if !sketch.SamePath(node.Build.Sketch) {
			node.EnsureDedicatedBuild()
			node.Build.Sketch = sketch
		}

		node.Sketch = attr.New(resolver.seq, sketch, path)
	}

	if hasSpec {
		doc, err := resolver.readDocument(l, specPath)
		if err != nil {
			return nil, err
		}

		if doc != nil {
			resolver.apply(l, node, doc)
		}
	}

	if node.IsTestTarget, err = resolver.finder.HasTestTrigger(path); err != nil {
		return nil, err
	}

	if !node.Name.IsSet() {
		node.Name = attr.New(resolver.seq, filepath.Base(path), path)
	}

	return node, nil
}

// sourceDir returns the directory the scope's files are read from, checking the rules for
// external-reference directories.
func (resolver *Resolver) sourceDir(path string) (string, error) {
	externalDir, ok, err := resolver.finder.ExternalDir(path)
	if err != nil || !ok {
		return path, err
	}

	if !resolver.finder.IsDir(externalDir) {
		return "", errors.New(ExternalDirNotDirectoryError{Path: externalDir})
	}

	entries, err := resolver.finder.Entries(path)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		name := entry.Name()

		if resolver.finder.IsExternalDir(name) || (resolver.finder.IsTestTrigger(name) && !entry.IsDir()) {
			continue
		}

		return "", errors.New(ExternalDirConflictError{Path: path, Entry: filepath.Join(path, name)})
	}

	return externalDir, nil
}

// readDocument parses the specification document at path. A malformed document is logged and
// reported as absent.
func (resolver *Resolver) readDocument(l log.Logger, path string) (*specdoc.Document, error) {
	doc, err := specdoc.ParseFile(resolver.finder.FS(), path)
	if err == nil {
		return doc, nil
	}

	var malformed *specdoc.MalformedDocumentError
	if !errors.As(err, &malformed) {
		return nil, err
	}

	l.Errorf("Ignoring %s", malformed.Error())

	return nil, nil
}

// apply overrides the node's inherited values with the document's.
func (resolver *Resolver) apply(l log.Logger, node *Node, doc *specdoc.Document) {
	if doc.Name != nil {
		node.Name = attr.New(resolver.seq, *doc.Name, node.Path)
	} else {
		// A scope describing itself without a name is named after its directory.
		node.Name = attr.New(resolver.seq, filepath.Base(node.Path), node.Path)
	}

	if doc.Description != nil {
		node.Description = attr.New(resolver.seq, *doc.Description, node.Path)
	}

	if doc.DriverCmdLineFlags != nil {
		node.DriverFlags = attr.New(resolver.seq, *doc.DriverCmdLineFlags, node.Path)
	}

	if doc.BoardsURL != nil || doc.BoardsCommit != nil {
		if url := firmware.FieldFrom(doc.BoardsURL); url.IsSet() && !url.Equal(node.Build.BoardsURL) {
			node.EnsureDedicatedBuild()
			node.Build.BoardsURL = url
		}

		if commit := firmware.FieldFrom(doc.BoardsCommit); commit.IsSet() && !commit.Equal(node.Build.BoardsCommit) {
			node.EnsureDedicatedBuild()
			node.Build.BoardsCommit = commit
		}

		node.BoardSource = attr.New(resolver.seq, firmware.BoardSource{
			URL:    node.Build.BoardsURL,
			Commit: node.Build.BoardsCommit,
		}, node.Path)
	}

	for _, entry := range doc.Modules {
		module := firmware.Module{
			URL:    firmware.FieldFrom(entry.URL),
			Commit: firmware.FieldFrom(entry.Commit),
			Name:   firmware.FieldFrom(entry.Name),
		}

		if node.Build.ContainsModule(module) {
			continue
		}

		node.EnsureDedicatedBuild()
		node.Build.AddModule(module)

		l.Debugf("Using %s", module)
	}
}
