// Package dedup collapses builds with equal content into canonical builds and numbers them.
package dedup

import (
	"github.com/keyboardio/testplan/internal/firmware"
	"github.com/keyboardio/testplan/internal/scope"
	"github.com/keyboardio/testplan/pkg/log"
)

// Result contains the outcome of build deduplication.
type Result struct {
	// ByDigest maps build digests to their canonical builds.
	ByDigest map[string]*firmware.Build

	// Builds lists the canonical builds ordered by ID, starting at 1.
	Builds []*firmware.Build

	// Merged is the number of distinct build instances that were found equal to an earlier one.
	Merged int
}

// Canonical returns the canonical build with the same content as build.
func (result *Result) Canonical(build *firmware.Build) (*firmware.Build, bool) {
	canonical, ok := result.ByDigest[build.Digest()]
	return canonical, ok
}

// Run assigns every test scope of the validated tree its canonical build.
//
// Test scopes are visited in pre-order. The first build presenting a digest becomes canonical
// and gets the next ID; builds presenting the same digest later are merged into it.
func Run(l log.Logger, tree *scope.Tree) *Result {
	result := &Result{ByDigest: make(map[string]*firmware.Build)}

	seen := make(map[*firmware.Build]struct{})
	nodes := tree.TestNodes()

	for _, node := range nodes {
		build := node.Build
		if _, ok := seen[build]; ok {
			continue
		}

		seen[build] = struct{}{}
		digest := build.Digest()

		if canonical, ok := result.ByDigest[digest]; ok {
			l.Debugf("Build of %s equals build %d of %s", build.Origin, canonical.ID, canonical.Origin)

			result.Merged++

			continue
		}

		build.ID = len(result.Builds) + 1
		result.ByDigest[digest] = build
		result.Builds = append(result.Builds, build)

		l.Debugf("Build %d defined at %s has digest %s", build.ID, build.Origin, digest)
	}

	for _, node := range nodes {
		node.Canonical, _ = result.Canonical(node.Build)
	}

	l.Infof("Found %d unique firmware builds for %d tests", len(result.Builds), len(nodes))

	return result
}
