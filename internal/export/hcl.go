package export

import (
	"io"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/plan"
	"github.com/zclconf/go-cty/cty"
)

var moduleType = cty.Object(map[string]cty.Type{
	"url":    cty.String,
	"commit": cty.String,
	"name":   cty.String,
})

// HCLWriter writes a plan as `build` and `test` blocks.
type HCLWriter struct{}

func (HCLWriter) Write(w io.Writer, p *plan.Plan) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for _, build := range p.Builds {
		body := root.AppendNewBlock("build", []string{strconv.Itoa(build.ID)}).Body()
		body.SetAttributeValue("sketch", cty.StringVal(build.Sketch))

		if build.BoardsURL != "" {
			body.SetAttributeValue("boards_url", cty.StringVal(build.BoardsURL))
		}

		if build.BoardsCommit != "" {
			body.SetAttributeValue("boards_commit", cty.StringVal(build.BoardsCommit))
		}

		body.SetAttributeValue("modules", modulesValue(build.Modules))
		body.SetAttributeValue("origin", cty.StringVal(build.Origin))

		root.AppendNewline()
	}

	for _, test := range p.Tests {
		body := root.AppendNewBlock("test", []string{test.Name}).Body()
		body.SetAttributeValue("id", cty.NumberIntVal(int64(test.ID)))
		body.SetAttributeValue("description", cty.StringVal(test.Description))
		body.SetAttributeValue("driver", cty.StringVal(test.Driver))

		if test.DriverFlags != "" {
			body.SetAttributeValue("driver_flags", cty.StringVal(test.DriverFlags))
		}

		body.SetAttributeValue("build_id", cty.NumberIntVal(int64(test.BuildID)))
		body.SetAttributeValue("origins", cty.ObjectVal(map[string]cty.Value{
			"name":        cty.StringVal(test.Origins.Name),
			"description": cty.StringVal(test.Origins.Description),
			"driver":      cty.StringVal(test.Origins.Driver),
			"build":       cty.StringVal(test.Origins.Build),
		}))

		root.AppendNewline()
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.New(err)
	}

	return nil
}

func modulesValue(modules []plan.ModuleRecord) cty.Value {
	if len(modules) == 0 {
		return cty.ListValEmpty(moduleType)
	}

	vals := make([]cty.Value, 0, len(modules))

	for _, module := range modules {
		vals = append(vals, cty.ObjectVal(map[string]cty.Value{
			"url":    cty.StringVal(module.URL),
			"commit": cty.StringVal(module.Commit),
			"name":   cty.StringVal(module.Name),
		}))
	}

	return cty.ListVal(vals)
}
