package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tagNamesOnce sync.Once

// useJSONFieldNames makes validation errors report json names ("programCode")
// instead of Go field names.
func useJSONFieldNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// missingFields lists the fields of req that failed validation, in
// declaration order. bindErr is the error returned by ShouldBindJSON; when
// the body could not be decoded at all, every required field is missing.
func missingFields(bindErr error, req interface{}) []string {
	var verrs validator.ValidationErrors
	if !errors.As(bindErr, &verrs) {
		v := reflect.ValueOf(req).Elem()
		v.Set(reflect.Zero(v.Type()))
		if err := binding.Validator.ValidateStruct(req); !errors.As(err, &verrs) {
			return nil
		}
	}

	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	return names
}
