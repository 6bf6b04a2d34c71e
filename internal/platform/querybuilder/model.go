package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

type modelField struct {
	column string
	value  any
	key    bool
}

// InsertModel builds an insert from the exported db-tagged fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	fields, err := modelFields(model)
	if err != nil {
		return "", nil, err
	}
	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, f.column)
		vals = append(vals, f.value)
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

// UpdateModel sets every non-key column and filters on the columns tagged `db:"col,key"`.
// Guards are ANDed after the key columns, e.g. for optimistic concurrency checks.
func UpdateModel(table string, model any, suffix string, guards ...Condition) (string, []any, error) {
	fields, err := modelFields(model)
	if err != nil {
		return "", nil, err
	}

	b := Update(table)
	var keys []Condition
	for _, f := range fields {
		if f.key {
			keys = append(keys, Eq(f.column, f.value))
			continue
		}
		b.Set(f.column, f.value)
	}
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("model has no key columns")
	}
	return b.Where(append(keys, guards...)...).Suffix(suffix).ToSQL()
}

// Columns lists the db columns of model, optionally qualified with alias.
func Columns(model any, alias string) []string {
	typ := reflect.TypeOf(model)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil
	}

	out := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		col, _, ok := parseTag(typ.Field(i))
		if !ok {
			continue
		}
		if alias != "" {
			col = alias + "." + col
		}
		out = append(out, col)
	}
	return out
}

func modelFields(model any) ([]modelField, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	out := make([]modelField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		col, key, ok := parseTag(typ.Field(i))
		if !ok {
			continue
		}
		out = append(out, modelField{column: col, value: value.Field(i).Interface(), key: key})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model has no db columns")
	}
	return out, nil
}

func parseTag(field reflect.StructField) (column string, key bool, ok bool) {
	if field.PkgPath != "" {
		return "", false, false
	}
	parts := strings.Split(strings.TrimSpace(field.Tag.Get("db")), ",")
	column = strings.TrimSpace(parts[0])
	if column == "" || column == "-" {
		return "", false, false
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "key" {
			key = true
		}
	}
	return column, key, true
}
