package export

import (
	"encoding/json"
	"io"

	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/plan"
)

// JSONWriter writes a plan as indented JSON.
type JSONWriter struct{}

func (JSONWriter) Write(w io.Writer, p *plan.Plan) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(p); err != nil {
		return errors.New(err)
	}

	return nil
}
