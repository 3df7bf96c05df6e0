package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
)

// formDateLayout matches the MM/DD/YYYY strings the store-front date
// pickers submit.
const formDateLayout = "01/02/2006"

// MethodOverride returns the tunneled HTTP method carried in the _method
// form field, if any. Browsers only submit GET and POST, so edit forms POST
// with _method=PUT.
func MethodOverride(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(r.FormValue("_method")))
}

// FormString returns the sanitized form value for key.
func FormString(r *http.Request, key string) string {
	return SanitizeString(r.FormValue(key), 0)
}

// FormOptionalString returns nil when the field was omitted or blank.
func FormOptionalString(r *http.Request, key string) *string {
	v := FormString(r, key)
	if v == "" {
		return nil
	}
	return &v
}

// FormInt parses a required integer field.
func FormInt(r *http.Request, key string) (int, error) {
	raw := FormString(r, key)
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" is required")
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, key+" must be a number")
	}
	return value, nil
}

// FormOptionalInt returns nil when the field was omitted or blank.
func FormOptionalInt(r *http.Request, key string) (*int, error) {
	raw := FormString(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, key+" must be a number")
	}
	return &value, nil
}

// FormDecimal parses a required fixed-point field, e.g. a price.
func FormDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	raw := FormString(r, key)
	if raw == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, key+" is required")
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, key+" must be a decimal number")
	}
	return value, nil
}

// FormOptionalDecimal returns nil when the field was omitted or blank.
func FormOptionalDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := FormString(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, key+" must be a decimal number")
	}
	return &value, nil
}

// FormOptionalDate parses an MM/DD/YYYY field, nil when blank.
func FormOptionalDate(r *http.Request, key string) (*time.Time, error) {
	raw := FormString(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(formDateLayout, raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, key+" must be a MM/DD/YYYY date")
	}
	return &value, nil
}

// FormCheckbox reports whether an HTML checkbox was ticked. Browsers send
// "on" for a bare checkbox and omit the field entirely when unticked.
func FormCheckbox(r *http.Request, key string) bool {
	switch strings.ToLower(FormString(r, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// SelectID extracts the leading numeric id from a select-option value of
// the form "3 - Dairy".
func SelectID(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "selection is required")
	}
	head := trimmed
	if idx := strings.Index(trimmed, " - "); idx >= 0 {
		head = trimmed[:idx]
	}
	id, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "selection must start with a numeric id")
	}
	return id, nil
}

// FormSelectID reads a select field and extracts its numeric id, nil when
// the field was omitted or blank.
func FormSelectID(r *http.Request, key string) (*int, error) {
	raw := FormString(r, key)
	if raw == "" {
		return nil, nil
	}
	id, err := SelectID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
