// Package utils reads column metadata from struct tags.
package utils

import (
	"reflect"
	"strings"
)

// GetFields lists the exported fields of t, a struct or pointer to one.
func GetFields(t any) []reflect.StructField {
	typeOf := reflect.TypeOf(t)
	if typeOf.Kind() == reflect.Pointer {
		typeOf = typeOf.Elem()
	}
	var result []reflect.StructField
	for i := 0; i < typeOf.NumField(); i++ {
		if field := typeOf.Field(i); field.IsExported() {
			result = append(result, field)
		}
	}
	return result
}

// ParquetTagToKeyValue splits "name=id, type=INT32" into its properties.
// Keys are lower-cased; entries without a value are kept with "".
func ParquetTagToKeyValue(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		result[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return result
}

// ColumnName is the parquet name of field, falling back to the Go name.
func ColumnName(field reflect.StructField) string {
	if name := ParquetTagToKeyValue(field.Tag.Get("parquet"))["name"]; name != "" {
		return name
	}
	return field.Name
}
