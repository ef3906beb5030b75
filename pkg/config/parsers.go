package config

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v10"
)

// trimmedParsers tolerates stray whitespace in numeric and boolean variables,
// which shows up regularly in values copied out of .env files.
func trimmedParsers() map[reflect.Type]env.ParserFunc {
	return map[reflect.Type]env.ParserFunc{
		reflect.TypeOf(int(0)): func(v string) (any, error) {
			return strconv.Atoi(strings.TrimSpace(v))
		},
		reflect.TypeOf(int32(0)): func(v string) (any, error) {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
			return int32(n), err
		},
		reflect.TypeOf(float64(0)): func(v string) (any, error) {
			return strconv.ParseFloat(strings.TrimSpace(v), 64)
		},
		reflect.TypeOf(false): func(v string) (any, error) {
			return strconv.ParseBool(strings.TrimSpace(v))
		},
	}
}
