package patch

import (
	"fmt"
	"strings"
)

// disabledBoundaryRule is the commented-out line shipped in the
// eslint.config.mjs template. EnableImportBoundaries swaps it for the
// active rule.
const disabledBoundaryRule = `            // "import-x/no-internal-modules": ["error", { "allow": [] }],`

// EnableImportBoundaries activates the import-boundary lint rule for the
// given scope in an ESLint flat-config document. When the commented pattern
// is not present the document is returned unchanged; callers must not
// assume the edit always lands.
func EnableImportBoundaries(doc []byte, scope string) []byte {
	active := fmt.Sprintf(`            "import-x/no-internal-modules": ["error", { "allow": ["%s/*"] }],`, scope)
	return []byte(strings.Replace(string(doc), disabledBoundaryRule, active, 1))
}
