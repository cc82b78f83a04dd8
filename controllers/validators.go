package controllers

import (
	"sync"

	"bookstore-service/services"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the form tags used by the bookstore forms to gin's
// validator. It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("money", validateMoney)
		}
	})
}

func validateMoney(fl validator.FieldLevel) bool {
	_, err := services.ParsePrice(fl.Field().String())
	return err == nil
}
