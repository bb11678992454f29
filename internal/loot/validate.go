package loot

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func entryValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		// Compare decimal chances numerically in range tags
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
		validate = v
	})
	return validate
}

// ValidateDropTable checks the configuration invariants of a drop table:
// a known kind, exactly one reference matching the kind, 1 <= min <= max and
// a chance in [0, 100] with at most two decimal places. Rolls assume these
// hold and never re-check them. Every problem found is reported.
func ValidateDropTable(entries []domain.DropTableEntry) error {
	v := entryValidator()

	var errs []error
	for i := range entries {
		entry := entries[i]
		problems := make(map[string]struct{})

		if err := v.Struct(entry); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return fmt.Errorf(ErrMsgEntryFmt, domain.ErrInvalidDropTable, i, err.Error())
			}
			for _, fe := range fieldErrs {
				problems[problemFor(fe)] = struct{}{}
			}
		}
		if !entry.ChancePercent.Equal(entry.ChancePercent.Truncate(2)) {
			problems[ProblemChancePrecision] = struct{}{}
		}

		for _, p := range orderedProblems {
			if _, ok := problems[p]; ok {
				errs = append(errs, fmt.Errorf(ErrMsgEntryFmt, domain.ErrInvalidDropTable, i, p))
			}
		}
	}
	return errors.Join(errs...)
}

var orderedProblems = []string{
	ProblemKind,
	ProblemReference,
	ProblemMinAmount,
	ProblemMaxAmount,
	ProblemChanceRange,
	ProblemChancePrecision,
}

func problemFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "Kind":
		return ProblemKind
	case "CurrencyID", "ItemID":
		return ProblemReference
	case "MinAmount":
		return ProblemMinAmount
	case "MaxAmount":
		return ProblemMaxAmount
	default:
		return ProblemChanceRange
	}
}
