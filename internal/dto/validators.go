package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers the custom binding tags on gin's validator engine.
// The "discount" tag accepts tiers from 0 to maxDiscount in steps of step.
func RegisterValidators(maxDiscount, step int) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("discount", DiscountTier(maxDiscount, step))
}

// DiscountTier builds the validator func behind the "discount" tag.
func DiscountTier(maxDiscount, step int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d := int(fl.Field().Int())
		if d < 0 || d > maxDiscount {
			return false
		}
		return step <= 0 || d%step == 0
	}
}
