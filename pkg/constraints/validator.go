package constraints

import (
	"fmt"
	"strings"
	"time"
)

// ValidationResult holds the outcome of validating a network against a set
// of constraints.
type ValidationResult struct {
	Valid      bool        // true if no violations were found
	Violations []Violation // all violations, in pass order
	CheckedAt  time.Time   // when validation ran
}

// ByKind returns the violations of one kind, preserving order.
func (vr *ValidationResult) ByKind(kind ViolationKind) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Kind == kind {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Messages returns every violation message in order, one per line.
func (vr *ValidationResult) Messages() string {
	lines := make([]string, len(vr.Violations))
	for i, v := range vr.Violations {
		lines[i] = v.Message
	}
	return strings.Join(lines, "\n")
}

// ValidationError wraps a failed validation result as an error carrying the
// complete punch list.
type ValidationError struct {
	Result *ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("network validation failed with %d violation(s):\n%s",
		len(e.Result.Violations), e.Result.Messages())
}

// Validator runs an ordered set of constraints over a network. Passes run in
// registration order and every violation is accumulated; validation never
// stops at the first failing pass.
type Validator struct {
	constraints []Constraint
}

// NewValidator creates an empty validator.
func NewValidator() *Validator {
	return &Validator{constraints: make([]Constraint, 0)}
}

// NewTopologyValidator creates the standard four-pass validator: node type
// validity, table node-ID validity, cross-reference consistency, and degree
// bounds from the given table.
func NewTopologyValidator(table DegreeTable) *Validator {
	v := NewValidator()
	v.AddConstraint(&NodeTypeConstraint{})
	v.AddConstraint(&TableIDConstraint{})
	v.AddConstraint(&CrossRefConstraint{})
	v.AddConstraint(&DegreeConstraint{Table: table})
	return v
}

// AddConstraint appends a constraint to the pass order.
func (v *Validator) AddConstraint(constraint Constraint) {
	v.constraints = append(v.constraints, constraint)
}

// Constraints returns the registered constraints in pass order.
func (v *Validator) Constraints() []Constraint {
	return v.constraints
}

// Validate runs every constraint and returns the accumulated result. The
// result is a deterministic function of the network state: running twice
// without mutation yields identical violation lists.
func (v *Validator) Validate(net NetworkReader) *ValidationResult {
	result := &ValidationResult{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}
	for _, constraint := range v.constraints {
		violations := constraint.Validate(net)
		if len(violations) > 0 {
			result.Valid = false
			result.Violations = append(result.Violations, violations...)
		}
	}
	return result
}
