package economy

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Lootkeeper_Go/internal/domain"
)

var validate = validator.New()

// validateTradeRequest checks the request shape before any storage access
func validateTradeRequest(req TradeRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidArgument, formatValidationError(err))
	}
	return validateQuantity(req.Quantity)
}

// validateQuantity validates the transaction quantity
func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf(ErrMsgInvalidQuantityFmt, quantity, domain.ErrInvalidQuantity)
	}
	if quantity > domain.MaxTransactionQuantity {
		return fmt.Errorf(ErrMsgQuantityExceedsMaxFmt, quantity, domain.MaxTransactionQuantity, domain.ErrInvalidQuantity)
	}
	return nil
}

// validateUniqueQuantity limits trades that name a unique instance to one unit
// and rejects an instance id on a stacked item.
func validateUniqueQuantity(item *domain.Item, req TradeRequest) error {
	if item.IsStacked && req.WorldID != nil {
		return fmt.Errorf(ErrMsgWorldIDOnStackedFmt, domain.ErrWorldIDOnStacked, item.ID)
	}
	if !item.IsStacked && req.WorldID != nil && req.Quantity != 1 {
		return fmt.Errorf(ErrMsgUniqueQuantityFmt, item.ID, req.Quantity, domain.ErrInvalidQuantity)
	}
	return nil
}

// tradeTotal multiplies without wrapping around
func tradeTotal(unitPrice int64, quantity int) (int64, error) {
	if unitPrice > 0 && int64(quantity) > math.MaxInt64/unitPrice {
		return 0, fmt.Errorf(ErrMsgPriceOverflowFmt, domain.ErrPriceOverflow, unitPrice, quantity)
	}
	return unitPrice * int64(quantity), nil
}

// formatValidationError flattens validator errors into "field: tag" pairs
// without leaking struct names.
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		parts = append(parts, strings.ToLower(e.Field())+": "+e.Tag())
	}
	return strings.Join(parts, ", ")
}
