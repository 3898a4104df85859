// Package specdoc reads specification documents, the YAML files a scope uses to override what it inherits.
package specdoc

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Recognized document keys.
const (
	KeyName               = "name"
	KeyDescription        = "description"
	KeyDriverCmdLineFlags = "driver_cmd_line_flags"
	KeyBoardsURL          = "boards_url"
	KeyBoardsCommit       = "boards_commit"
	KeyModules            = "modules"
)

// Document is a decoded specification document. Keys that are absent from the file stay nil.
type Document struct {
	// Name is the scope's own naming segment.
	Name *string `json:"name,omitempty" mapstructure:"name"`
	// Description of the tests generated at or below the scope.
	Description *string `json:"description,omitempty" mapstructure:"description"`
	// DriverCmdLineFlags are passed to the test driver.
	DriverCmdLineFlags *string `json:"driver_cmd_line_flags,omitempty" mapstructure:"driver_cmd_line_flags"`
	// BoardsURL is where the board definitions are fetched from.
	BoardsURL *string `json:"boards_url,omitempty" mapstructure:"boards_url"`
	// BoardsCommit pins the board definitions.
	BoardsCommit *string `json:"boards_commit,omitempty" mapstructure:"boards_commit"`
	// Modules are added to, or replace modules of, the inherited build.
	Modules []ModuleEntry `json:"modules,omitempty" mapstructure:"modules"`

	keys map[string]struct{}
}

// ModuleEntry is one item of the modules list. Every field is optional.
type ModuleEntry struct {
	URL    *string `json:"url,omitempty" mapstructure:"url"`
	Commit *string `json:"commit,omitempty" mapstructure:"commit"`
	Name   *string `json:"name,omitempty" mapstructure:"name"`
}

// Has reports whether key was present in the document, even with an empty value.
func (doc *Document) Has(key string) bool {
	_, ok := doc.keys[key]
	return ok
}

// ParseFile reads and parses the document at path.
func ParseFile(fs vfs.FS, path string) (*Document, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		var malformed *MalformedDocumentError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}

		return nil, err
	}

	return doc, nil
}

// Parse decodes a YAML specification document and validates it against the document schema.
// Keys the schema does not know are allowed and ignored. An empty input is an empty document.
// Scalars keep their literal text, so `commit: 0123456` is the string "0123456". A key with a
// null value counts as absent.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.New(&MalformedDocumentError{Reasons: []string{err.Error()}})
	}

	raw := map[string]any{}

	if len(root.Content) > 0 {
		value, err := decodeNode(root.Content[0])
		if err != nil {
			return nil, err
		}

		mapping, ok := value.(map[string]any)
		if !ok && value != nil {
			return nil, errors.New(&MalformedDocumentError{Reasons: []string{"the document is not a mapping of keys to values"}})
		}

		if mapping != nil {
			raw = mapping
		}
	}

	if err := validate(raw); err != nil {
		return nil, err
	}

	doc := &Document{keys: make(map[string]struct{}, len(raw))}

	for key := range raw {
		doc.keys[key] = struct{}{}
	}

	if err := mapstructure.Decode(raw, doc); err != nil {
		return nil, errors.New(&MalformedDocumentError{Reasons: []string{err.Error()}})
	}

	return doc, nil
}

// decodeNode converts a YAML node into plain maps, slices and strings.
func decodeNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}

		return node.Value, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))

		for _, child := range node.Content {
			item, err := decodeNode(child)
			if err != nil {
				return nil, err
			}

			items = append(items, item)
		}

		return items, nil
	case yaml.MappingNode:
		mapping := make(map[string]any, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, valueNode := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, errors.New(&MalformedDocumentError{
					Reasons: []string{fmt.Sprintf("line %d: keys must be plain values", key.Line)},
				})
			}

			value, err := decodeNode(valueNode)
			if err != nil {
				return nil, err
			}

			if value != nil {
				mapping[key.Value] = value
			}
		}

		return mapping, nil
	default:
		return nil, errors.New(&MalformedDocumentError{
			Reasons: []string{fmt.Sprintf("line %d: unsupported YAML node", node.Line)},
		})
	}
}

func validate(raw map[string]any) error {
	schemaBytes, err := schemaJSON()
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaBytes), gojsonschema.NewGoLoader(raw))
	if err != nil {
		return errors.New(&MalformedDocumentError{Reasons: []string{err.Error()}})
	}

	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}

	return errors.New(&MalformedDocumentError{Reasons: reasons})
}

var schemaJSON = sync.OnceValues(func() ([]byte, error) {
	data, err := json.Marshal(Schema())
	if err != nil {
		return nil, errors.New(err)
	}

	return data, nil
})

// Schema returns the JSON schema specification documents are validated against.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}

	schema := reflector.Reflect(&Document{})
	// gojsonschema does not know the 2020-12 meta-schema the reflector declares.
	schema.Version = ""
	schema.ID = "https://github.com/keyboardio/testplan/schemas/specification.json"
	schema.Title = "Test specification document"

	return schema
}
