// Package plan runs the planning pipeline over a testing tree and produces the records exporters write.
package plan

import (
	"context"

	"github.com/keyboardio/testplan/internal/dedup"
	"github.com/keyboardio/testplan/internal/discovery"
	"github.com/keyboardio/testplan/internal/scope"
	"github.com/keyboardio/testplan/internal/telemetry"
	"github.com/keyboardio/testplan/options"
	"github.com/keyboardio/testplan/pkg/log"
)

// Plan is the result of a successful run: the unique builds and the tests running on them.
type Plan struct {
	Builds []BuildRecord `json:"builds"`
	Tests  []TestRecord  `json:"tests"`
}

// BuildRecord describes one canonical firmware build.
type BuildRecord struct {
	ID           int            `json:"id"`
	BoardsURL    string         `json:"boards_url,omitempty"`
	BoardsCommit string         `json:"boards_commit,omitempty"`
	Sketch       string         `json:"sketch"`
	Modules      []ModuleRecord `json:"modules"`
	Origin       string         `json:"origin"`
}

// ModuleRecord is one module of a build. Unset fields are empty.
type ModuleRecord struct {
	URL    string `json:"url,omitempty"`
	Commit string `json:"commit,omitempty"`
	Name   string `json:"name,omitempty"`
}

// TestRecord describes one test.
type TestRecord struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DriverFlags string  `json:"driver_flags,omitempty"`
	Driver      string  `json:"driver"`
	BuildID     int     `json:"build_id"`
	Origins     Origins `json:"origins"`
}

// Origins are the scopes that defined a test's values. Build is where the test's own build was
// defined, which may differ from the origin of the equal canonical build.
type Origins struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Driver      string `json:"driver"`
	Build       string `json:"build"`
}

// Generate builds the tree at opts.RootDir, validates it, checks test names and deduplicates builds.
// Each stage runs on the complete result of the one before; the first failing stage ends the run.
func Generate(ctx context.Context, l log.Logger, opts *options.TestplanOptions) (*Plan, error) {
	finder, err := discovery.NewFinder(opts.FS, opts.Conventions)
	if err != nil {
		return nil, err
	}

	var tree *scope.Tree

	err = telemetry.Trace(ctx, "build_tree", map[string]any{"root": opts.RootDir}, func(ctx context.Context) error {
		tree, err = scope.NewBuilder(finder).Build(ctx, l, opts.RootDir)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = telemetry.Trace(ctx, "validate_tree", map[string]any{"scopes": len(tree.Nodes)}, func(ctx context.Context) error {
		return scope.Validate(l, tree)
	})
	if err != nil {
		return nil, err
	}

	var names map[string]*scope.Node

	err = telemetry.Trace(ctx, "check_names", nil, func(ctx context.Context) error {
		names, err = scope.CheckUniqueness(tree)
		return err
	})
	if err != nil {
		return nil, err
	}

	var result *dedup.Result

	err = telemetry.Trace(ctx, "deduplicate_builds", map[string]any{"tests": len(names)}, func(ctx context.Context) error {
		result = dedup.Run(l, tree)
		return nil
	})
	if err != nil {
		return nil, err
	}

	plan := newPlan(tree, result)

	attrs := map[string]any{"root": opts.RootDir}
	telemetry.Count(ctx, "testplan_scopes", int64(len(tree.Nodes)), attrs)
	telemetry.Count(ctx, "testplan_tests", int64(len(plan.Tests)), attrs)
	telemetry.Count(ctx, "testplan_builds", int64(len(plan.Builds)), attrs)
	telemetry.Count(ctx, "testplan_merged_builds", int64(result.Merged), attrs)

	return plan, nil
}

func newPlan(tree *scope.Tree, result *dedup.Result) *Plan {
	plan := &Plan{
		Builds: make([]BuildRecord, 0, len(result.Builds)),
	}

	for _, build := range result.Builds {
		record := BuildRecord{
			ID:           build.ID,
			BoardsURL:    build.BoardsURL.Text(),
			BoardsCommit: build.BoardsCommit.Text(),
			Sketch:       build.Sketch.String(),
			Modules:      make([]ModuleRecord, 0, len(build.Modules)),
			Origin:       build.Origin,
		}

		for _, module := range build.Modules {
			record.Modules = append(record.Modules, ModuleRecord{
				URL:    module.URL.Text(),
				Commit: module.Commit.Text(),
				Name:   module.Name.Text(),
			})
		}

		plan.Builds = append(plan.Builds, record)
	}

	for _, node := range tree.TestNodes() {
		plan.Tests = append(plan.Tests, TestRecord{
			ID:          len(plan.Tests) + 1,
			Name:        node.GlobalName(),
			Description: node.Description.Value,
			DriverFlags: node.DriverFlags.Value,
			Driver:      node.Driver.Value.String(),
			BuildID:     node.Canonical.ID,
			Origins: Origins{
				Name:        node.Name.Origin,
				Description: node.Description.Origin,
				Driver:      node.Driver.Origin,
				Build:       node.Build.Origin,
			},
		})
	}

	return plan
}
