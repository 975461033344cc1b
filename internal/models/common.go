package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Entity type tags. The tag decides both the intake validation rules and the
// destination table an approved record is merged into.
const (
	TipoEmpleado  = "empleado"
	TipoCliente   = "cliente"
	TipoProveedor = "proveedor"
)

// IsValidTipo reports whether the given tag is a recognized entity type
func IsValidTipo(tipo string) bool {
	return tipo == TipoEmpleado || tipo == TipoCliente || tipo == TipoProveedor
}

// JSON is a raw JSON column value
type JSON json.RawMessage

// Value implements driver.Valuer for writing JSON columns
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner for reading JSON columns
func (j *JSON) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = JSON(v)
		return nil
	default:
		return errors.New("models: incompatible type for JSON column")
	}
}

// MarshalJSON returns j as the JSON encoding of j
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON sets *j to a copy of data
func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}
