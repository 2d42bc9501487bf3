package controllers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/RaiAraujo30/Complete-Physical-Store/services"
)

var registerOnce sync.Once

// RegisterValidators adds the "cep" and "uf" binding tags to gin's validator.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err = v.RegisterValidation("cep", validateCEPField); err != nil {
			return
		}
		err = v.RegisterValidation("uf", validateUFField)
	})
	return err
}

func validateCEPField(fl validator.FieldLevel) bool {
	return services.ValidateCEP(fl.Field().String()) == nil
}

func validateUFField(fl validator.FieldLevel) bool {
	_, svcErr := services.ValidateState(fl.Field().String())
	return svcErr == nil
}
