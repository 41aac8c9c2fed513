package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	perr "galaxy/internal/platform/errors"
)

// Header returns the CSV header of record type T in declared field order
// the csv tag names a column, falling back to the json tag; "-" skips a field
func Header[T any]() ([]string, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, perr.Mappingf("csv record must be a struct, got %s", rt)
	}
	var out []string
	for _, f := range fields(rt) {
		out = append(out, f.name)
	}
	return out, nil
}

type field struct {
	index int
	name  string
}

func fields(rt reflect.Type) []field {
	out := make([]field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := tagName(sf.Tag.Get("csv"))
		if name == "" {
			name = tagName(sf.Tag.Get("json"))
		}
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		out = append(out, field{index: i, name: name})
	}
	return out
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// WriteCSV writes a header and one row per record in declared field order
func WriteCSV[T any](w io.Writer, records []T) error {
	header, err := Header[T]()
	if err != nil {
		return err
	}
	fs := fields(reflect.TypeFor[T]())
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rv := reflect.ValueOf(r)
		row := make([]string, len(fs))
		for i, f := range fs {
			row[i] = cell(rv.Field(f.index))
		}
		rows = append(rows, row)
	}
	return WriteTable(w, header, rows)
}

// WriteTable writes a dynamic header and rows, used by pivoted reports
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return perr.Wrap(err, perr.ErrorCodeMapping, "write csv header")
	}
	if err := cw.WriteAll(rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeMapping, "write csv rows")
	}
	return nil
}

var timeType = reflect.TypeFor[time.Time]()

func cell(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Type() == timeType {
		return v.Interface().(time.Time).UTC().Format(time.RFC3339)
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = cell(v.Index(i))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v.Interface())
}
