package models

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/go-playground/validator"
)

type Model interface {
	TableName() string
	EmptySlice() interface{}
}

// go-playground/validator suggests using a single instance of the validator.
// The api package keeps its own instance for request schemas; this one covers
// model-level validation before writes.
var validate = validator.New()

// ValidateModel validates a model using the go-playground/validator package. It
// returns an error if the provided argument does not implement the Model
// interface.
func ValidateModel(model interface{}) error {
	m, ok := model.(Model)
	if !ok {
		return fmt.Errorf("expected model, got %T", model)
	}

	if err := validate.Struct(m); err != nil {
		return err
	}
	return nil
}

// GetValsFromModel returns the field values of a model as a slice of
// interfaces, in the order of the model's column names. It is used for
// extracting values from the model and writing them to the database. Validation
// of the model should be done before use.
func GetValsFromModel(m Model) []interface{} {
	val := reflect.ValueOf(m)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()
	numFields := val.NumField()

	fieldMap := make(map[string]interface{})
	for i := 0; i < numFields; i++ {
		field := typ.Field(i)

		if field.Tag.Get("readOnly") == "true" {
			continue
		}

		dbTag := field.Tag.Get("db")
		fieldMap[dbTag] = val.Field(i).Interface()
	}

	columnNames := GetColumnNames(m, true)
	vals := make([]interface{}, len(columnNames))
	for i, cn := range columnNames {
		vals[i] = fieldMap[cn]
	}

	return vals
}

// ScanRowToModel scans a single SQL row into a given model. It takes a model
// and passes a slice of pointers to the model's fields to the sql.Row's Scan
// method. It returns an error if the scan fails or the model is not a pointer.
func ScanRowToModel(m Model, r *sql.Row) error {
	val := reflect.ValueOf(m)
	if val.Kind() != reflect.Ptr {
		return fmt.Errorf("expected pointer to model, got %T", m)
	}
	val = val.Elem()
	typ := val.Type()

	fieldPtrs := make([]interface{}, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		fieldPtrs[i] = val.Field(i).Addr().Interface()
	}

	if err := r.Scan(fieldPtrs...); err != nil {
		return err
	}
	return nil
}

// ScanRowsToSliceOfModels scans every row into a new instance of the model's
// type and returns a pointer to the accumulated slice, obtained from the
// model's EmptySlice method.
func ScanRowsToSliceOfModels(m Model, rows *sql.Rows) (interface{}, error) {
	modelsSlice := m.EmptySlice()

	// Dereference the interface wrapper with Elem(), and make sure we have a slice
	sliceVal := reflect.ValueOf(modelsSlice).Elem()
	if sliceVal.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected slice, got %s", sliceVal.Kind())
	}

	elemType := sliceVal.Type().Elem()

	for rows.Next() {
		model := reflect.New(elemType).Elem()

		fieldPtrs := make([]interface{}, model.NumField())
		for i := 0; i < model.NumField(); i++ {
			fieldPtrs[i] = model.Field(i).Addr().Interface()
		}

		if err := rows.Scan(fieldPtrs...); err != nil {
			return nil, err
		}

		sliceVal.Set(reflect.Append(sliceVal, model))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return modelsSlice, nil
}

// GetColumnNames returns the model's column names as a slice of strings.
// The order follows the field declaration order, which must match the
// table's column order.
func GetColumnNames(m Model, excludeReadOnlyFields bool) []string {
	val := reflect.ValueOf(m)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()
	var columnNames []string

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		if excludeReadOnlyFields && field.Tag.Get("readOnly") == "true" {
			continue
		}

		columnNames = append(columnNames, field.Tag.Get("db"))
	}
	return columnNames
}
