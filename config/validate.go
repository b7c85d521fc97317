package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()

	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("config: no 'en' translator")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	// Report fields by their json names so validation errors match the
	// serialized form users actually write.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks the Config against its declared tags. The returned
// error lists every failing field, named as in its json form.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var invalid InvalidConfigError
	for _, verror := range verrors {
		invalid.Fields = append(invalid.Fields, verror.Field()+": "+verror.Translate(translator))
	}
	return &invalid
}

// InvalidConfigError reports which Config fields failed validation.
type InvalidConfigError struct {
	Fields []string
}

func (e *InvalidConfigError) Error() string {
	return "invalid config: " + strings.Join(e.Fields, "; ")
}
