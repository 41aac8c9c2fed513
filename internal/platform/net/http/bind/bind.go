// Package bind decodes report filter bodies and validates them with
// go-playground/validator, reporting the first failing field by its json name.
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	perr "galaxy/internal/platform/errors"
	"galaxy/internal/platform/logger"
)

// shortMessages replace the stock english text; {0} is the field, {1} the tag param
var shortMessages = map[string]string{
	"min":   "{0} must be at least {1}",
	"max":   "{0} must be at most {1}",
	"gt":    "{0} must be greater than {1}",
	"oneof": "{0} must be one of [{1}]",
}

var (
	vOnce sync.Once
	vld   *validator.Validate
	trans ut.Translator

	jsonMore = func(dec *json.Decoder) bool { return dec.More() }
)

func validate() (*validator.Validate, ut.Translator) {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		vld = validator.New(validator.WithRequiredStructEnabled())
		vld.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(vld, trans)
		for tag, text := range shortMessages {
			_ = vld.RegisterTranslation(tag, trans,
				func(t ut.Translator) error { return t.Add(tag, text, true) },
				func(t ut.Translator, fe validator.FieldError) string {
					msg, _ := t.T(tag, fe.Field(), fe.Param())
					return msg
				},
			)
		}
	})
	return vld, trans
}

// JSONOptions controls decoding; the zero value allows unknown fields and any size
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
}

// DefaultJSON caps bodies at 1MB, enough for a geometry filter, and rejects unknown fields
var DefaultJSON = JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}

// ParseJSON decodes one JSON object into T and validates it.
// A GET without a body yields the zero T; any other method needs a body.
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := DefaultJSON
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("closing request body")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	}
	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF) && r.Method == http.MethodGet:
			return zero, nil
		case errors.Is(err, io.EOF):
			return zero, perr.JSONErrf("request body is required")
		case errors.As(err, &tooLarge):
			return zero, perr.JSONErrf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("request body must be a single JSON object")
	}

	v, _ := validate()
	if err := v.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			// T is not a struct: a programming error, not a client one
			logger.C(r.Context()).Error().Err(inv).Msg("validator misuse")
			return zero, perr.JSONErrf("request body must be a JSON object")
		}
		field, msg := ValidationFieldAndMessage(err)
		return zero, perr.WithField(perr.Validationf("%s", msg), field)
	}
	return dst, nil
}

// ValidationFieldAndMessage returns the first failing field and its english message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		_, tr := validate()
		return verrs[0].Field(), verrs[0].Translate(tr)
	}
	return "", err.Error()
}
