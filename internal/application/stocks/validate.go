package stocks

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// ValidationError agrupa los problemas campo a campo de un lote rechazado.
// Se produce antes de cualquier escritura: un lote inválido jamás llega al
// libro mayor, ni siquiera parcialmente.
type ValidationError struct {
	Fields map[string]string
}

// Error implementa error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación fallida (%d campos)", len(e.Fields))
}

var validate = newValidator()

// newValidator construye el validador con nombres de campo tomados del tag
// json, para que las claves del mapa coincidan con el body que envió el
// caller (items[2].quantity y no Items[2].Quantity).
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

// validateSubmit aplica las reglas de línea: product_id no vacío, quantity
// entero positivo, unit_price no negativo si está presente. Devuelve nil si
// el lote es válido.
func validateSubmit(in *dto.SubmitBatchRequest) *ValidationError {
	fields := make(map[string]string)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fieldKey(fe)] = messageFor(fe)
			}
		} else {
			fields["body"] = "cuerpo inválido"
		}
	}

	// decimal.Decimal no soporta los tags numéricos de validator
	for i, item := range in.Items {
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			fields[fmt.Sprintf("items[%d].unit_price", i)] = "no puede ser negativo"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// fieldKey recorta el nombre del struct raíz del namespace del error:
// "SubmitBatchRequest.items[0].product_id" -> "items[0].product_id".
func fieldKey(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "items" {
			return "debe contener al menos una línea"
		}
		return "es obligatorio"
	case "min":
		if fe.Field() == "items" {
			return "debe contener al menos una línea"
		}
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "gt":
		return "debe ser un entero mayor a cero"
	}
	return "valor inválido"
}
