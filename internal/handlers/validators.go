package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// registerValidations adds domain checks to gin's validator engine so bad
// entry kinds are rejected at binding time.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("entrykind", func(fl validator.FieldLevel) bool {
		return domain.ValidKind(domain.EntryKind(strings.ToUpper(fl.Field().String())))
	})
}
