package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/usersvc/internal/domain/errors"
	"github.com/polkiloo/usersvc/internal/domain/model"
)

// userFields lists accepted payload keys in reporting order.
var userFields = []string{"login", "age", "password"}

type userPayload struct {
	Login    *string `json:"login" validate:"required,min=1"`
	Age      *int    `json:"age" validate:"required,gte=0"`
	Password *string `json:"password" validate:"required,password"`
}

type userPatchPayload struct {
	Login    *string `json:"login" validate:"omitempty,min=1"`
	Age      *int    `json:"age" validate:"omitempty,gte=0"`
	Password *string `json:"password" validate:"omitempty,password"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidatePassword requires ASCII letters and digits only, with at least one
// lowercase letter, one uppercase letter and one digit.
func ValidatePassword(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return lower && upper && digit
}

// ValidateUser checks a create payload and returns the normalized user without id.
// Every violation is reported in the returned *errors.ValidationError.
func ValidateUser(payload []byte) (*model.User, error) {
	var in userPayload
	if err := decodeAndValidate(payload, &in); err != nil {
		return nil, err
	}
	return &model.User{Login: *in.Login, Age: *in.Age, Password: *in.Password}, nil
}

// ValidateUserPatch checks a partial update payload. Present fields follow the
// create rules; absent fields are allowed.
func ValidateUserPatch(payload []byte) (model.UserPatch, error) {
	var in userPatchPayload
	if err := decodeAndValidate(payload, &in); err != nil {
		return model.UserPatch{}, err
	}
	return model.UserPatch{Login: in.Login, Age: in.Age, Password: in.Password}, nil
}

func decodeAndValidate(payload []byte, dst any) error {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil || raw == nil {
		return &domainErrors.ValidationError{Fields: []domainErrors.FieldError{
			{Message: `"value" must be of type object`, Path: []string{}},
		}}
	}

	found := make(map[string]domainErrors.FieldError)
	typed := make(map[string]json.RawMessage, len(userFields))
	for _, name := range userFields {
		value, ok := raw[name]
		if !ok {
			continue
		}
		normalized, msg, ok := checkType(name, value)
		if !ok {
			found[name] = fieldError(name, msg)
			continue
		}
		typed[name] = normalized
	}

	encoded, err := json.Marshal(typed)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(encoded, dst); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return fmt.Errorf("validate payload: %w", err)
		}
		for _, fe := range vErrs {
			name := fe.Field()
			if _, exists := found[name]; exists {
				continue
			}
			found[name] = fieldError(name, ruleMessage(fe))
		}
	}

	var fields []domainErrors.FieldError
	for _, name := range userFields {
		if fe, ok := found[name]; ok {
			fields = append(fields, fe)
		}
	}

	var unknown []string
	for key := range raw {
		if !isUserField(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		fields = append(fields, fieldError(key, "is not allowed"))
	}

	if len(fields) > 0 {
		return &domainErrors.ValidationError{Fields: fields}
	}
	return nil
}

// maxSafeInteger is the largest integer a JSON number carries without precision loss.
const maxSafeInteger = 1<<53 - 1

// checkType verifies JSON kinds before decoding so mismatches become field errors.
// Whole numbers written in float notation ("30.0", "3e1") are normalized to integers.
func checkType(name string, value json.RawMessage) (json.RawMessage, string, bool) {
	if string(value) == "null" {
		return value, "", true
	}
	switch name {
	case "age":
		var decoded any
		dec := json.NewDecoder(bytes.NewReader(value))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			return nil, "must be a number", false
		}
		n, ok := decoded.(json.Number)
		if !ok {
			return nil, "must be a number", false
		}
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || math.Abs(f) > maxSafeInteger {
			return nil, "must be a safe number", false
		}
		if f != math.Trunc(f) {
			return nil, "must be an integer", false
		}
		return json.RawMessage(strconv.FormatInt(int64(f), 10)), "", true
	default:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, "must be a string", false
		}
	}
	return value, "", true
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "is not allowed to be empty"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "password":
		return "must contain only letters and digits, including an uppercase letter, a lowercase letter and a digit"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

func fieldError(name, msg string) domainErrors.FieldError {
	return domainErrors.FieldError{
		Message: fmt.Sprintf("%q %s", name, msg),
		Path:    []string{name},
	}
}

func isUserField(key string) bool {
	for _, name := range userFields {
		if key == name {
			return true
		}
	}
	return false
}
