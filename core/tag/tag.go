package tag

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	tagName  = "default"
	maxDepth = 16
)

// ApplyDefaults fills zero-valued fields of the struct behind target from
// their `default` tags. Nested structs are walked; fields that already hold a
// value are left alone.
//
//	type Server struct {
//	    Addr string `default:":9090"`
//	}
func ApplyDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrTargetMustBePointer
	}
	return applyStruct(v.Elem(), "", 0)
}

func applyStruct(v reflect.Value, path string, depth int) error {
	if depth >= maxDepth {
		return ErrMaxDepthExceeded
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		fieldPath := field.Name
		if path != "" {
			fieldPath = path + "." + field.Name
		}

		switch {
		case fv.Kind() == reflect.Struct:
			if err := applyStruct(fv, fieldPath, depth+1); err != nil {
				return err
			}
		case fv.Kind() == reflect.Pointer && field.Type.Elem().Kind() == reflect.Struct:
			if fv.IsNil() {
				fv.Set(reflect.New(field.Type.Elem()))
			}
			if err := applyStruct(fv.Elem(), fieldPath, depth+1); err != nil {
				return err
			}
		default:
			def, ok := field.Tag.Lookup(tagName)
			if !ok || !fv.IsZero() {
				continue
			}
			if err := set(fv, def); err != nil {
				return &FieldError{Path: fieldPath, Kind: fv.Kind(), Value: def, Err: err}
			}
		}
	}
	return nil
}

func set(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == reflect.TypeFor[time.Duration]() {
			d, err := time.ParseDuration(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		parts := splitList(s)
		slice := reflect.MakeSlice(v.Type(), len(parts), len(parts))
		for i, p := range parts {
			if err := set(slice.Index(i), p); err != nil {
				return err
			}
		}
		v.Set(slice)
	case reflect.Map:
		// key:value,key:value
		m := reflect.MakeMap(v.Type())
		for _, pair := range splitList(s) {
			k, val, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			key := reflect.New(v.Type().Key()).Elem()
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := set(key, strings.TrimSpace(k)); err != nil {
				return err
			}
			if err := set(elem, strings.TrimSpace(val)); err != nil {
				return err
			}
			m.SetMapIndex(key, elem)
		}
		v.Set(m)
	default:
		return ErrUnsupportedType
	}
	return nil
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
