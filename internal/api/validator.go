package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator 把 go-playground/validator 接到 echo.Validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator 以表單欄位名稱回報錯誤
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

const fallbackMessage = "Giá trị không hợp lệ"

// Translate 把驗證錯誤依 "field.tag" 查 messages 轉成欄位訊息
// err 不是驗證錯誤時回傳 nil
func Translate(err error, messages map[string]string) map[string]string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make(map[string]string, len(ves))
	for _, fe := range ves {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fallbackMessage
		}
		out[fe.Field()] = msg
	}
	return out
}
