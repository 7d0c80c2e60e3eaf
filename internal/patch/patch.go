package patch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tailscale/hujson"
)

// indentUnit matches the indentation style of the shipped tsconfig templates.
const indentUnit = "    "

// Edit assigns Value (any JSON-marshalable value) to the object member at
// Path, creating intermediate objects as needed. An existing member is
// replaced in place, so applying the same edit twice is idempotent.
type Edit struct {
	Path  []string
	Value any
}

// Apply performs the edits in order on a JSON-with-comments document. Each
// edit is computed against the already-edited document. Comments and all
// bytes outside the edited paths are preserved. The result is re-parsed
// before being returned, guaranteeing it is still valid JWCC.
func Apply(doc []byte, edits []Edit) ([]byte, error) {
	v, err := hujson.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	for _, e := range edits {
		if len(e.Path) == 0 {
			return nil, fmt.Errorf("edit has empty path")
		}
		if err := setPath(&v, e.Path, e.Value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", strings.Join(e.Path, "."), err)
		}
	}

	out := v.Pack()
	if _, err := hujson.Parse(out); err != nil {
		return nil, fmt.Errorf("edited document no longer parses: %w", err)
	}
	return out, nil
}

func setPath(v *hujson.Value, path []string, value any) error {
	cur := v
	for i, seg := range path {
		obj, ok := cur.Value.(*hujson.Object)
		if !ok {
			return fmt.Errorf("%q is not an object", strings.Join(path[:i], "."))
		}

		member := findMember(obj, seg)
		if member == nil {
			member = appendMember(obj, seg, i+1)
		}

		if i == len(path)-1 {
			encoded, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encoding value: %w", err)
			}
			parsed, err := hujson.Parse(encoded)
			if err != nil {
				return fmt.Errorf("re-parsing encoded value: %w", err)
			}
			// Replace only the trimmed value so surrounding whitespace
			// and comments stay untouched.
			member.Value.Value = parsed.Value
			continue
		}

		if _, ok := member.Value.Value.(*hujson.Object); !ok {
			// Only a member appendMember just added has no value yet.
			// An existing non-object value is a malformed document, not
			// something to overwrite.
			if member.Value.Value != nil {
				return fmt.Errorf("%q is not an object", strings.Join(path[:i+1], "."))
			}
			member.Value.Value = &hujson.Object{}
		}
		cur = &member.Value
	}
	return nil
}

// findMember returns the member of obj named name, or nil.
func findMember(obj *hujson.Object, name string) *hujson.ObjectMember {
	for i := range obj.Members {
		lit, ok := obj.Members[i].Name.Value.(hujson.Literal)
		if !ok {
			continue
		}
		if lit.String() == name || string(lit) == `"`+name+`"` {
			return &obj.Members[i]
		}
	}
	return nil
}

// appendMember adds a new member to obj at the given nesting depth and
// returns a pointer to it. The name carries a newline plus indentation so
// the packed output stays readable.
func appendMember(obj *hujson.Object, name string, depth int) *hujson.ObjectMember {
	obj.Members = append(obj.Members, hujson.ObjectMember{
		Name: hujson.Value{
			BeforeExtra: hujson.Extra("\n" + strings.Repeat(indentUnit, depth)),
			Value:       hujson.String(name),
		},
		Value: hujson.Value{
			BeforeExtra: hujson.Extra(" "),
		},
	})
	return &obj.Members[len(obj.Members)-1]
}
