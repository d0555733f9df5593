package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/smallbiznis/burnout/internal/healthdata/domain"
)

type recordInput struct {
	HeartRate     int     `json:"heartRate" validate:"gte=30,lte=220"`
	SleepDuration float64 `json:"sleepDuration" validate:"gte=0,lte=24"`
	SleepQuality  string  `json:"sleepQuality" validate:"oneof=poor fair good excellent"`
	ActivityLevel string  `json:"activityLevel" validate:"oneof=sedentary light moderate vigorous"`
	StressLevel   int     `json:"stressLevel" validate:"gte=1,lte=10"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseRecord turns the raw request into typed values, collecting every field failure.
func parseRecord(v *validator.Validate, req domain.SubmitRecordRequest) (recordInput, error) {
	var (
		in     recordInput
		verr   domain.ValidationError
		failed = map[string]bool{}
	)
	fail := func(field, code, message string) {
		failed[field] = true
		verr.Add(field, code, message)
	}

	if raw, ok := required(req.HeartRate); !ok {
		fail("heartRate", "required", "heartRate is required")
	} else if n, err := parseWhole(raw); err != nil {
		fail("heartRate", err.Error(), "heartRate must be a whole number")
	} else {
		in.HeartRate = n
	}

	if raw, ok := required(req.SleepDuration); !ok {
		fail("sleepDuration", "required", "sleepDuration is required")
	} else if f, err := parseNumber(raw); err != nil {
		fail("sleepDuration", "not_a_number", "sleepDuration must be a number")
	} else {
		in.SleepDuration = f
	}

	if raw, ok := required(req.SleepQuality); !ok {
		fail("sleepQuality", "required", "sleepQuality is required")
	} else {
		in.SleepQuality = strings.ToLower(raw)
	}

	if raw, ok := required(req.ActivityLevel); !ok {
		fail("activityLevel", "required", "activityLevel is required")
	} else {
		in.ActivityLevel = strings.ToLower(raw)
	}

	if raw, ok := required(req.StressLevel); !ok {
		fail("stressLevel", "required", "stressLevel is required")
	} else if n, err := parseWhole(raw); err != nil {
		fail("stressLevel", err.Error(), "stressLevel must be a whole number")
	} else {
		in.StressLevel = n
	}

	if err := v.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return recordInput{}, err
		}
		for _, fe := range fieldErrs {
			if failed[fe.Field()] {
				continue
			}
			code, message := describe(fe)
			verr.Add(fe.Field(), code, message)
		}
	}

	if err := verr.OrNil(); err != nil {
		return recordInput{}, err
	}
	return in, nil
}

func required(raw *string) (string, bool) {
	if raw == nil {
		return "", false
	}
	value := strings.TrimSpace(*raw)
	return value, value != ""
}

var (
	errNotANumber   = errors.New("not_a_number")
	errNotAnInteger = errors.New("not_an_integer")
)

func parseNumber(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotANumber
	}
	return f, nil
}

func parseWhole(raw string) (int, error) {
	f, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errNotAnInteger
	}
	return int(f), nil
}

func describe(fe validator.FieldError) (string, string) {
	switch fe.Tag() {
	case "gte":
		return "out_of_range", fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return "out_of_range", fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return "invalid_choice", fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "invalid", fmt.Sprintf("%s is invalid", fe.Field())
	}
}
