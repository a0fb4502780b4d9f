package engine

import (
	"fmt"
	"slices"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"

	"github.com/chazu/envelope/pkg/layout"
	"github.com/chazu/envelope/pkg/plan"
	"github.com/chazu/envelope/pkg/units"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpOpening wraps a plan.Opening returned by `door` and `window`.
type sexpOpening struct {
	o plan.Opening
}

func (s *sexpOpening) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s :wall %d :type %q)", s.o.Kind, s.o.Wall, s.o.Type.Name)
}
func (s *sexpOpening) Type() *zygo.RegisteredType { return nil }

// sexpRoof wraps a plan.Roof returned by the roof builtins.
type sexpRoof struct {
	r plan.Roof
}

func (s *sexpRoof) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s-roof :type %q)", s.r.Kind, s.r.Type.Name)
}
func (s *sexpRoof) Type() *zygo.RegisteredType { return nil }

// sexpBuildingRef is returned by `building`.
type sexpBuildingRef struct {
	name string
}

func (s *sexpBuildingRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(building %q)", s.name)
}
func (s *sexpBuildingRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// unknown returns an error naming every keyword not in allowed, in
// alphabetical order.
func (a kwArgs) unknown(allowed ...string) error {
	bad := lo.Filter(lo.Keys(a.kw), func(k string, _ int) bool {
		return !lo.Contains(allowed, k)
	})
	if len(bad) == 0 {
		return nil
	}
	slices.Sort(bad)
	if len(bad) == 1 {
		return fmt.Errorf("unknown keyword :%s", bad[0])
	}
	return fmt.Errorf("unknown keywords :%s", strings.Join(bad, " :"))
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toLength extracts a millimetre length.
func toLength(s zygo.Sexp) (units.Length, error) {
	f, err := toFloat64(s)
	return units.Length(f), err
}

// toInt extracts an integer; floats must be whole.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == float64(int(v.Val)) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a boolean.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// typeRef applies :type and :family to ref.
func (a kwArgs) typeRef(ref *plan.TypeRef) error {
	if v, ok := a.kw["type"]; ok {
		s, err := toString(v)
		if err != nil {
			return fmt.Errorf("type: %w", err)
		}
		ref.Name = s
	}
	if v, ok := a.kw["family"]; ok {
		s, err := toString(v)
		if err != nil {
			return fmt.Errorf("family: %w", err)
		}
		ref.Family = s
	}
	return nil
}

// lengths applies each named millimetre keyword present in a.
func (a kwArgs) lengths(fields map[string]*units.Length) error {
	for name, dst := range fields {
		if v, ok := a.kw[name]; ok {
			l, err := toLength(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = l
		}
	}
	return nil
}

// floats applies each named internal-unit keyword present in a.
func (a kwArgs) floats(fields map[string]*float64) error {
	for name, dst := range fields {
		if v, ok := a.kw[name]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = f
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector accumulates the buildings declared by one script.
type collector struct {
	plans []plan.Plan
	names map[string]bool
}

func newCollector() *collector {
	return &collector{names: make(map[string]bool)}
}

// registerBuiltins installs the building DSL builtins into a zygomys
// environment. Buildings declared by the script are appended to c.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, c *collector) {

	opening := func(kind plan.OpeningKind) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			o := plan.Door(0)
			if kind == plan.OpeningWindow {
				o = plan.Window(0)
			}
			if err := pa.unknown("type", "family", "wall", "offset", "sill"); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
			}
			if err := pa.typeRef(&o.Type); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
			}
			if v, ok := pa.kw["wall"]; ok {
				w, err := toInt(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: wall: %w", kind, err)
				}
				o.Wall = w
			}
			err := pa.lengths(map[string]*units.Length{
				"offset": &o.Offset,
				"sill":   &o.Sill,
			})
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
			}
			return &sexpOpening{o: o}, nil
		}
	}

	// -----------------------------------------------------------------------
	// (door :type "0915 x 2134 mm" :family "Single-Flush" :wall 0 :offset 0)
	// (window :type "0915 x 1830 mm" :family "Fixed" :wall 1 :sill 900)
	// -----------------------------------------------------------------------
	env.AddFunction("door", opening(plan.OpeningDoor))
	env.AddFunction("window", opening(plan.OpeningWindow))

	// -----------------------------------------------------------------------
	// (footprint-roof :type "Generic - 400mm" :family "Basic Roof" :slope 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("footprint_roof", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r := plan.DefaultRoof(layout.RoofFootprint)
		if err := pa.unknown("type", "family", "slope"); err != nil {
			return zygo.SexpNull, fmt.Errorf("footprint-roof: %w", err)
		}
		if err := pa.typeRef(&r.Type); err != nil {
			return zygo.SexpNull, fmt.Errorf("footprint-roof: %w", err)
		}
		if err := pa.floats(map[string]*float64{"slope": &r.Slope}); err != nil {
			return zygo.SexpNull, fmt.Errorf("footprint-roof: %w", err)
		}
		return &sexpRoof{r: r}, nil
	})

	// -----------------------------------------------------------------------
	// (extrusion-roof :type "Generic - 400mm" :family "Basic Roof"
	//                 :rise 7 :overhang 1)
	// -----------------------------------------------------------------------
	env.AddFunction("extrusion_roof", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r := plan.DefaultRoof(layout.RoofExtrusion)
		if err := pa.unknown("type", "family", "rise", "overhang"); err != nil {
			return zygo.SexpNull, fmt.Errorf("extrusion-roof: %w", err)
		}
		if err := pa.typeRef(&r.Type); err != nil {
			return zygo.SexpNull, fmt.Errorf("extrusion-roof: %w", err)
		}
		err := pa.floats(map[string]*float64{"rise": &r.RidgeRise, "overhang": &r.EaveOverhang})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrusion-roof: %w", err)
		}
		return &sexpRoof{r: r}, nil
	})

	// -----------------------------------------------------------------------
	// (building "house" :width 10000 :depth 5000
	//           :base-level "Level 1" :top-level "Level 2"
	//           :openings (list (door ...) (window ...))
	//           :roof (extrusion-roof ...))
	// -----------------------------------------------------------------------
	env.AddFunction("building", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("building requires a name argument")
		}
		bName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("building: name: %w", err)
		}
		if c.names[bName] {
			return zygo.SexpNull, fmt.Errorf("building: %q is already defined", bName)
		}
		if err := pa.unknown("width", "depth", "base-level", "top-level", "structural", "openings", "roof"); err != nil {
			return zygo.SexpNull, fmt.Errorf("building %q: %w", bName, err)
		}

		p := plan.Default()
		p.Name = bName
		if err := pa.lengths(map[string]*units.Length{"width": &p.Width, "depth": &p.Depth}); err != nil {
			return zygo.SexpNull, fmt.Errorf("building %q: %w", bName, err)
		}
		for kw, dst := range map[string]*string{"base-level": &p.BaseLevel, "top-level": &p.TopLevel} {
			if v, ok := pa.kw[kw]; ok {
				s, err := toString(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("building %q: %s: %w", bName, kw, err)
				}
				*dst = s
			}
		}
		if v, ok := pa.kw["structural"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("building %q: structural: %w", bName, err)
			}
			p.Structural = b
		}
		if v, ok := pa.kw["openings"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("building %q: openings: %w", bName, err)
			}
			p.Openings = make([]plan.Opening, 0, len(items))
			for i, item := range items {
				o, ok := item.(*sexpOpening)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("building %q: opening %d: expected door or window, got %T (%s)",
						bName, i, item, item.SexpString(nil))
				}
				p.Openings = append(p.Openings, o.o)
			}
		}
		if v, ok := pa.kw["roof"]; ok {
			switch r := v.(type) {
			case *sexpRoof:
				p.Roof = r.r
			case *zygo.SexpSentinel:
				if r != zygo.SexpNull {
					return zygo.SexpNull, fmt.Errorf("building %q: roof: unexpected %s", bName, r.SexpString(nil))
				}
			default:
				return zygo.SexpNull, fmt.Errorf("building %q: roof: expected a roof, got %T (%s)", bName, v, v.SexpString(nil))
			}
		}

		c.names[bName] = true
		c.plans = append(c.plans, p)
		return &sexpBuildingRef{name: bName}, nil
	})
}
