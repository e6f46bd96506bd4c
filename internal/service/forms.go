package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type AddressForm struct {
	RecipientName string `json:"recipient_name" validate:"required,max=100"`
	Street        string `json:"street" validate:"required,max=200"`
	Number        string `json:"number" validate:"required,max=20"`
	Neighborhood  string `json:"neighborhood" validate:"max=100"`
	City          string `json:"city" validate:"required,max=100"`
	State         string `json:"state" validate:"required,max=50"`
	PostalCode    string `json:"postal_code" validate:"required,max=20"`
	Complement    string `json:"complement" validate:"max=200"`
}

// CardForm is the card as typed by the shopper. A brand sent by the client is
// accepted for echo only and never stored.
type CardForm struct {
	HolderName string `json:"holder_name" validate:"required,max=100"`
	Number     string `json:"number" validate:"required"`
	Brand      string `json:"brand,omitempty"`
	Expiry     string `json:"expiry" validate:"required,datetime=01/06"`
	CardType   string `json:"card_type" validate:"required,oneof=credit debit"`
}

// cardNumber is validated after spaces and dashes are stripped.
type cardNumber struct {
	Number string `json:"number" validate:"number,min=12,max=19"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors converts validator output into a ValidationError, or returns
// err unchanged when it is not a validation failure.
func fieldErrors(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}
