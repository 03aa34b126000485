package validation

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Argument defaults shared by every operation that takes a threshold or
// fill limit.
const (
	DefaultThreshold = 20
	DefaultLimit     = 3
)

// Columned is the part of a table the validator needs to check year labels.
type Columned interface {
	HasColumn(label string) bool
}

// Args carries the numeric arguments common to the cleaning operations.
// Ranges match the dataset semantics: a threshold is a percentage of
// missing values and a fill limit is a small gap length.
type Args struct {
	Threshold int `validate:"min=0,max=99"`
	Limit     int `validate:"min=0,max=5"`
}

// Result is the outcome of an argument check. Every failed condition
// contributes a problem; checking never short-circuits so callers see the
// full list at once.
type Result struct {
	Valid    bool
	Problems []string
}

// addProblem records a failure.
func (r *Result) addProblem(format string, args ...interface{}) {
	r.Valid = false
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// ArgsValidator validates table arguments for the dataprocessing
// operations.
type ArgsValidator struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewArgsValidator creates a new argument validator.
func NewArgsValidator(logger *slog.Logger) *ArgsValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArgsValidator{
		logger:   logger,
		validate: validator.New(),
	}
}

// Check validates a table, an optional set of year labels, a threshold and
// a fill limit. years may be nil to skip the label check. All conditions
// are checked; each failure is logged and reported in the result.
func (v *ArgsValidator) Check(table Columned, years []string, threshold, limit int) Result {
	result := Result{Valid: true}

	if isNilTable(table) {
		result.addProblem("improper type for table")
	} else {
		for _, year := range years {
			if !table.HasColumn(year) {
				result.addProblem("year '%s' does not exist in table", year)
			}
		}
	}

	if err := v.validate.Struct(Args{Threshold: threshold, Limit: limit}); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "Threshold":
					result.addProblem("threshold '%d' must be in range [0 - 99%%]", threshold)
				case "Limit":
					result.addProblem("limit '%d' must be in range [0 - 5]", limit)
				}
			}
		} else {
			result.addProblem("argument validation failed: %v", err)
		}
	}

	for _, problem := range result.Problems {
		v.logger.Error("Argument validation failed",
			slog.String("problem", problem))
	}

	return result
}

// isNilTable reports whether table is absent, including a nil pointer
// boxed into the interface, which would otherwise pass the nil check and
// blow up on the method call.
func isNilTable(table Columned) bool {
	if table == nil {
		return true
	}
	v := reflect.ValueOf(table)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// CheckYears validates only the table and year labels, using default
// threshold and limit values.
func (v *ArgsValidator) CheckYears(table Columned, years ...string) Result {
	return v.Check(table, years, DefaultThreshold, DefaultLimit)
}
