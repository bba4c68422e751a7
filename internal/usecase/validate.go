package usecase

import (
	"errors"

	"subscription-storefront/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// invalidInput maps struct validation failures to client-facing messages.
func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "email" {
				return domain.Invalid("البريد الإلكتروني غير صالح")
			}
		}
		return domain.Invalid("جميع الحقول المطلوبة يجب ملؤها")
	}
	return err
}
