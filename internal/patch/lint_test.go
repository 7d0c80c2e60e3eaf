package patch

import (
	"bytes"
	"strings"
	"testing"
)

const sampleLintConfig = `export default [
    {
        rules: {
            // "import-x/no-internal-modules": ["error", { "allow": [] }],
            "no-console": "warn",
        },
    },
];
`

func TestEnableImportBoundaries(t *testing.T) {
	out := EnableImportBoundaries([]byte(sampleLintConfig), "@acme")

	want := `"import-x/no-internal-modules": ["error", { "allow": ["@acme/*"] }],`
	if !strings.Contains(string(out), want) {
		t.Errorf("active rule missing from output:\n%s", out)
	}
	if strings.Contains(string(out), `// "import-x/no-internal-modules"`) {
		t.Errorf("commented rule still present:\n%s", out)
	}
	if !strings.Contains(string(out), `"no-console": "warn"`) {
		t.Errorf("unrelated rule lost:\n%s", out)
	}
}

func TestEnableImportBoundaries_NoopWhenPatternAbsent(t *testing.T) {
	doc := []byte("export default [];\n")
	out := EnableImportBoundaries(doc, "@acme")

	if !bytes.Equal(out, doc) {
		t.Errorf("document changed despite missing pattern:\n%s", out)
	}
}
