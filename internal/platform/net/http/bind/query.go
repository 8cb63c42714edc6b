package bind

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	perr "tjmwatch/internal/platform/errors"
)

// decodeValues fills the exported fields of *dst tagged with `query:"name"`
func decodeValues(vals url.Values, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return perr.Internalf("bind: query target must be a pointer to struct, got %T", dst)
	}
	return decodeStruct(vals, rv.Elem())
}

func decodeStruct(vals url.Values, sv reflect.Value) error {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		fv := sv.Field(i)
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			if err := decodeStruct(vals, fv); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			continue
		}
		raw, present := vals[name]
		if !present || len(raw) == 0 {
			continue
		}
		if err := setField(fv, raw); err != nil {
			return perr.WithField(perr.Validationf("%s must be a valid %s", name, kindLabel(fv.Type())), name)
		}
	}
	return nil
}

func setField(fv reflect.Value, raw []string) error {
	if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String {
		var out []string
		for _, r := range raw {
			for _, p := range strings.Split(r, ",") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
		}
		fv.Set(reflect.ValueOf(out))
		return nil
	}

	s := strings.TrimSpace(raw[0])
	if fv.Kind() == reflect.Pointer {
		if s == "" {
			return nil
		}
		p := reflect.New(fv.Type().Elem())
		if err := setScalar(p.Elem(), s); err != nil {
			return err
		}
		fv.Set(p)
		return nil
	}
	return setScalar(fv, s)
}

func setScalar(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Float32, reflect.Float64:
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	case reflect.Bool:
		if s == "" {
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	default:
		return perr.Internalf("bind: unsupported query field kind %s", fv.Kind())
	}
	return nil
}

func kindLabel(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return "value"
	}
}
