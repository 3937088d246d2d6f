// Package validation checks submitted product payloads against the field
// rules and normalises the accepted values.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Error messages reported to clients, one per violated rule.
const (
	MsgNameRequired = "PRODUCTNAME is required."
	MsgNameTooLong  = "PRODUCTNAME must be at most 100 characters."
	MsgPriceInvalid = "PRICE must be a positive number."
	MsgStockInvalid = "STOCK must be 0 or positive integer."
)

// MaxNameLength is the longest accepted product name, in characters.
const MaxNameLength = 100

// PriceScale is the number of fractional digits a price is stored with.
const PriceScale = 2

// Payload keys. Legacy clients send the upper-case column names.
var (
	nameKeys  = []string{"name", "PRODUCTNAME"}
	priceKeys = []string{"price", "PRICE"}
	stockKeys = []string{"stock", "STOCK"}
)

// Result is the outcome of validating a payload. Name, Price and Stock are
// only meaningful when Valid is true.
type Result struct {
	Valid  bool
	Errors []string
	Name   string
	Price  decimal.Decimal
	Stock  int
}

// fields is the coerced payload. A nil pointer means the value was missing
// or not a number.
type fields struct {
	Name  string           `validate:"required,max=100"`
	Price *decimal.Decimal `validate:"required,gt=0"`
	Stock *int             `validate:"required,gte=0"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidateProduct checks payload against every rule. All rules run, so
// several errors may be reported together, in rule order.
func ValidateProduct(payload map[string]any) Result {
	f := coerce(payload)

	var errs []string
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// Only returned for invalid arguments to Struct, which f never is.
			panic(err)
		}
		for _, fe := range verrs {
			errs = append(errs, messageFor(fe))
		}
	}

	res := Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Name:   f.Name,
	}
	if f.Price != nil {
		res.Price = *f.Price
	}
	if f.Stock != nil {
		res.Stock = *f.Stock
	}
	return res
}

func coerce(payload map[string]any) fields {
	var f fields

	if v, ok := lookup(payload, nameKeys); ok {
		if s, isString := v.(string); isString {
			f.Name = strings.TrimSpace(s)
		}
	}

	if v, ok := lookup(payload, priceKeys); ok {
		if text, ok := textOf(v); ok {
			if d, ok := ParseLeadingDecimal(text); ok {
				d = d.Round(PriceScale)
				f.Price = &d
			}
		}
	}

	if v, ok := lookup(payload, stockKeys); ok {
		if text, ok := textOf(v); ok {
			parse := ParseLeadingInt
			if _, isString := v.(string); !isString {
				// JSON numbers count by value, not by their spelling.
				parse = NumberToInt
			}
			if n, ok := parse(text); ok {
				f.Stock = &n
			}
		}
	}

	return f
}

func lookup(payload map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := payload[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func messageFor(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Name":
		if fe.Tag() == "max" {
			return MsgNameTooLong
		}
		return MsgNameRequired
	case "Price":
		return MsgPriceInvalid
	default:
		return MsgStockInvalid
	}
}
