package validation

import (
	"reflect"
	"strings"
)

// Sanitize trims every string and *string field of the struct pointed to by v.
// Empty optional strings become nil. Field tags adjust the behaviour:
//
//	sanitize:"keep"   leave the value untouched (passwords)
//	sanitize:"lower"  trim and lower-case (emails)
func Sanitize(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		mode := rt.Field(i).Tag.Get("sanitize")
		if mode == "keep" {
			continue
		}
		switch {
		case f.Kind() == reflect.String:
			f.SetString(clean(f.String(), mode))
		case f.Kind() == reflect.Pointer && f.Type().Elem().Kind() == reflect.String && !f.IsNil():
			s := clean(f.Elem().String(), mode)
			if s == "" {
				f.Set(reflect.Zero(f.Type()))
				continue
			}
			f.Elem().SetString(s)
		}
	}
}

func clean(s, mode string) string {
	s = strings.TrimSpace(s)
	if mode == "lower" {
		s = strings.ToLower(s)
	}
	return s
}
