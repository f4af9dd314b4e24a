// Package validation wraps go-playground/validator with the form error shape the API returns.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"artifolio/internal/domain/works"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

// Engine returns the shared validator with the project's custom tags registered.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report fields under their form/json name
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("technique", func(fl validator.FieldLevel) bool {
			return works.Technique(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		engine = v
	})
	return engine
}

// FormErrors collects every problem of a submission so it can be redisplayed at once.
type FormErrors struct {
	Fields   map[string][]string         `json:"fields,omitempty"`
	NonField []string                    `json:"non_field,omitempty"`
	Items    map[int]map[string][]string `json:"items,omitempty"`
}

func New() *FormErrors {
	return &FormErrors{}
}

func (e *FormErrors) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *FormErrors) AddNonField(msg string) {
	e.NonField = append(e.NonField, msg)
}

func (e *FormErrors) AddItem(index int, field, msg string) {
	if e.Items == nil {
		e.Items = map[int]map[string][]string{}
	}
	if e.Items[index] == nil {
		e.Items[index] = map[string][]string{}
	}
	e.Items[index][field] = append(e.Items[index][field], msg)
}

func (e *FormErrors) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.NonField) == 0 && len(e.Items) == 0)
}

// Err returns nil when nothing was recorded, so callers can `return errs.Err()`.
func (e *FormErrors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *FormErrors) Error() string {
	parts := make([]string, 0, len(e.Fields)+len(e.NonField)+len(e.Items))
	parts = append(parts, e.NonField...)

	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], " ")))
	}

	idx := make([]int, 0, len(e.Items))
	for i := range e.Items {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		for f, msgs := range e.Items[i] {
			parts = append(parts, fmt.Sprintf("item %d %s: %s", i, f, strings.Join(msgs, " ")))
		}
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// AsFormErrors reports whether err carries form errors.
func AsFormErrors(err error) (*FormErrors, bool) {
	var fe *FormErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Struct validates s and folds the result into a FormErrors keyed by field name.
func Struct(s any) *FormErrors {
	errs := New()
	Collect(errs, Engine().Struct(s), errs.Add)
	return errs
}

// Collect routes validator failures through add, one message per failing field.
func Collect(errs *FormErrors, err error, add func(field, msg string)) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.AddNonField(err.Error())
		return
	}
	for _, fe := range verrs {
		add(fe.Field(), Message(fe))
	}
}

// Message renders a validator failure the way the forms display it.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "technique":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "datetime":
		return "Enter a valid date."
	case "min", "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "Enter a valid value."
	}
}
