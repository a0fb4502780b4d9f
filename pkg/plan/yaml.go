package plan

import (
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/chazu/envelope/pkg/layout"
)

var roofKeys = []string{"kind", "type", "slope", "ridge_rise", "eave_overhang"}

// LoadYAML decodes a plan from YAML. Fields missing from the document keep
// the values of Default().
func LoadYAML(r io.Reader) (Plan, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return p, nil
		}
		return Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	return p, nil
}

// WriteYAML encodes p as YAML.
func WriteYAML(w io.Writer, p Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}

// UnmarshalYAML seeds the roof with DefaultRoof for the named kind before
// applying the fields the document sets, so `kind: extrusion` alone yields a
// buildable roof.
func (r *Roof) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: roof must be a mapping", value.Line)
	}
	// Node.Decode does not inherit the decoder's KnownFields setting.
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !slices.Contains(roofKeys, key.Value) {
			return fmt.Errorf("line %d: field %s not found in type plan.Roof", key.Line, key.Value)
		}
		if key.Value != "kind" {
			continue
		}
		var kind layout.RoofKind
		if err := value.Content[i+1].Decode(&kind); err != nil {
			return err
		}
		*r = DefaultRoof(kind)
	}
	type plain Roof
	return value.Decode((*plain)(r))
}
