package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/envelope/pkg/layout"
)

// ValidationSeverity indicates whether a finding blocks a build or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks the build
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Field    string             // dotted path of the offending field, e.g. "openings[2].wall"
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Field, e.Message)
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether the plan has no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Err folds the blocking errors into a single error wrapping
// layout.ErrInvalidArgument, or returns nil.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("plan validation failed: %s: %w", strings.Join(msgs, "; "), layout.ErrInvalidArgument)
}

// Validate runs all checks against p. It never mutates p.
func Validate(p Plan) ValidationResult {
	var findings []ValidationError
	findings = append(findings, validateDimensions(p)...)
	findings = append(findings, validateLevels(p)...)
	findings = append(findings, validateOpenings(p)...)
	findings = append(findings, validateRoof(p.Roof)...)
	findings = append(findings, sizeFindings(p, NominalSizes(p))...)
	return split(findings)
}

// CheckSizes runs the fit and clash checks with sizes[i] as the size of
// p.Openings[i]. Validate uses the sizes encoded in type names; the
// builder calls this again with the sizes of the types the document
// resolved.
func CheckSizes(p Plan, sizes []Size) ValidationResult {
	return split(sizeFindings(p, sizes))
}

func split(findings []ValidationError) ValidationResult {
	var result ValidationResult
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, f)
		} else {
			result.Errors = append(result.Errors, f)
		}
	}
	return result
}

func validateDimensions(p Plan) []ValidationError {
	var errs []ValidationError
	if p.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "building has no name", Severity: SeverityWarning})
	}
	if !p.Width.IsFinite() || p.Width <= 0 {
		errs = append(errs, ValidationError{
			Field:    "width",
			Message:  fmt.Sprintf("width is %v, must be positive", p.Width),
			Severity: SeverityError,
		})
	}
	if !p.Depth.IsFinite() || p.Depth <= 0 {
		errs = append(errs, ValidationError{
			Field:    "depth",
			Message:  fmt.Sprintf("depth is %v, must be positive", p.Depth),
			Severity: SeverityError,
		})
	}
	return errs
}

func validateLevels(p Plan) []ValidationError {
	var errs []ValidationError
	if p.BaseLevel == "" {
		errs = append(errs, ValidationError{Field: "base_level", Message: "base level name is required", Severity: SeverityError})
	}
	if p.TopLevel == "" {
		errs = append(errs, ValidationError{Field: "top_level", Message: "top level name is required", Severity: SeverityError})
	}
	if p.BaseLevel != "" && p.BaseLevel == p.TopLevel {
		errs = append(errs, ValidationError{
			Field:    "top_level",
			Message:  fmt.Sprintf("top level %q is the same as the base level", p.TopLevel),
			Severity: SeverityError,
		})
	}
	return errs
}

func validateOpenings(p Plan) []ValidationError {
	var errs []ValidationError
	for i, o := range p.Openings {
		field := fmt.Sprintf("openings[%d]", i)

		if o.Wall < 0 || o.Wall >= WallCount {
			errs = append(errs, ValidationError{
				Field:    field + ".wall",
				Message:  fmt.Sprintf("wall index %d out of range 0-%d", o.Wall, WallCount-1),
				Severity: SeverityError,
			})
			continue
		}
		if o.Type.Name == "" || o.Type.Family == "" {
			errs = append(errs, ValidationError{
				Field:    field + ".type",
				Message:  fmt.Sprintf("%s type needs both a name and a family", o.Kind),
				Severity: SeverityError,
			})
		}
		if !o.Sill.IsFinite() || o.Sill < 0 {
			errs = append(errs, ValidationError{
				Field:    field + ".sill",
				Message:  fmt.Sprintf("sill is %v, must not be negative", o.Sill),
				Severity: SeverityError,
			})
		}
		if o.Kind == OpeningDoor && o.Sill != 0 {
			errs = append(errs, ValidationError{
				Field:    field + ".sill",
				Message:  fmt.Sprintf("door has a sill of %v", o.Sill),
				Severity: SeverityWarning,
			})
		}
		if !o.Offset.IsFinite() {
			errs = append(errs, ValidationError{Field: field + ".offset", Message: "offset is not a number", Severity: SeverityError})
			continue
		}

		if _, _, ok := o.Size(); !ok {
			errs = append(errs, ValidationError{
				Field:    field + ".type",
				Message:  fmt.Sprintf("size of %s is not in its name; fit and clash checks wait for the document", o.Type),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// sizeFindings checks that every sized opening fits its wall and that no
// two sized openings overlap.
func sizeFindings(p Plan, sizes []Size) []ValidationError {
	var errs []ValidationError
	for i, o := range p.Openings {
		if o.Wall < 0 || o.Wall >= WallCount || !o.Offset.IsFinite() || i >= len(sizes) || !sizes[i].known() {
			continue
		}
		w := sizes[i].Width
		half := float64(p.WallLength(o.Wall)) / 2
		if math.Abs(float64(o.Offset))+float64(w)/2 > half {
			errs = append(errs, ValidationError{
				Field:    fmt.Sprintf("openings[%d]", i),
				Message:  fmt.Sprintf("%s %v wide at offset %v does not fit in wall %d (%v long)", o.Kind, w, o.Offset, o.Wall, p.WallLength(o.Wall)),
				Severity: SeverityError,
			})
		}
	}
	return append(errs, clashFindings(p, sizes)...)
}

func validateRoof(r Roof) []ValidationError {
	var errs []ValidationError
	if r.Kind == layout.RoofNone {
		return nil
	}
	if r.Type.Name == "" {
		errs = append(errs, ValidationError{Field: "roof.type", Message: "roof type name is required", Severity: SeverityError})
	}
	switch r.Kind {
	case layout.RoofFootprint:
		if math.IsNaN(r.Slope) || r.Slope < 0 || r.Slope >= math.Pi/2 {
			errs = append(errs, ValidationError{
				Field:    "roof.slope",
				Message:  fmt.Sprintf("slope is %g rad, must be in [0, pi/2)", r.Slope),
				Severity: SeverityError,
			})
		}
	case layout.RoofExtrusion:
		if math.IsNaN(r.RidgeRise) || r.RidgeRise <= 0 {
			errs = append(errs, ValidationError{
				Field:    "roof.ridge_rise",
				Message:  fmt.Sprintf("ridge rise is %g, must be positive", r.RidgeRise),
				Severity: SeverityError,
			})
		}
		if math.IsNaN(r.EaveOverhang) || math.IsInf(r.EaveOverhang, 0) {
			errs = append(errs, ValidationError{Field: "roof.eave_overhang", Message: "eave overhang is not a number", Severity: SeverityError})
		} else if r.EaveOverhang < 0 {
			errs = append(errs, ValidationError{
				Field:    "roof.eave_overhang",
				Message:  fmt.Sprintf("negative eave overhang %g stops the roof short of the end walls", r.EaveOverhang),
				Severity: SeverityWarning,
			})
		}
	default:
		errs = append(errs, ValidationError{Field: "roof.kind", Message: fmt.Sprintf("unknown roof kind %v", r.Kind), Severity: SeverityError})
	}
	return errs
}
