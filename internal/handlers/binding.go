package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var bindingOnce sync.Once

// registerCustomValidations adds domain validation tags to gin's binding
// engine. Registered once; RegisterRoutes may run repeatedly in tests.
//
// dgte0 rejects negative decimal amounts at the binding layer. Balance and
// side semantics stay in the entry validator, which reports per-line fields.
func registerCustomValidations() {
	bindingOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
			value, ok := fl.Field().Interface().(decimal.Decimal)
			if !ok {
				return false
			}
			return !value.IsNegative()
		})
	})
}
