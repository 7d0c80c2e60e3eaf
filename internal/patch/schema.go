package patch

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tailscale/hujson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed tsconfig.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("tsconfig.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("tsconfig.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateCompilerConfig checks a patched JSON-with-comments compiler
// configuration document against the embedded schema. It catches a patch
// that produced a structurally wrong document before any external tool
// trips over it.
func ValidateCompilerConfig(doc []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	standard, err := hujson.Standardize(doc)
	if err != nil {
		return fmt.Errorf("standardizing document: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(standard))
	if err != nil {
		return fmt.Errorf("preparing JSON for validation: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok && ve.ErrorKind != nil {
			return fmt.Errorf("compiler configuration invalid: %s", ve.ErrorKind.LocalizedString(printer))
		}
		return fmt.Errorf("compiler configuration invalid: %w", err)
	}
	return nil
}
