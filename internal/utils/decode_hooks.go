package utils

import (
	"reflect"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

// TrimmedStringDecodeHook trims surrounding whitespace from every string value during
// configuration unmarshaling, so configuration files and environment overrides behave alike.
func TrimmedStringDecodeHook() mapstructure.DecodeHookFuncKind {
	return func(fromKind reflect.Kind, toKind reflect.Kind, data any) (any, error) {
		if fromKind != reflect.String || toKind != reflect.String {
			return data, nil
		}
		stringValue, isString := data.(string)
		if !isString {
			return data, nil
		}
		return strings.TrimSpace(stringValue), nil
	}
}
