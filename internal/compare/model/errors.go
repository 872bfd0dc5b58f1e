package model

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the only error class that stops a comparison run.
var ErrConfiguration = errors.New("configuration error")

var (
	ErrNoKeyColumns      = fmt.Errorf("%w: at least one key column is required", ErrConfiguration)
	ErrNoCommonColumns   = fmt.Errorf("%w: tables have no common columns", ErrConfiguration)
	ErrKeyColumnNotFound = fmt.Errorf("%w: key column is not present in both tables", ErrConfiguration)
	ErrInvalidTolerance  = fmt.Errorf("%w: numeric tolerance must be a finite number >= 0", ErrConfiguration)
	ErrDuplicateColumn   = fmt.Errorf("%w: duplicate column name", ErrConfiguration)
)

// ErrUnknownColumn is returned by report views for a column that was not compared.
var ErrUnknownColumn = errors.New("unknown column")

type WarningKind string

const (
	WarnSchemaMismatch WarningKind = "schema_mismatch"
	WarnDuplicateKeys  WarningKind = "duplicate_keys"
	WarnKeySeparator   WarningKind = "key_separator"
)

// Warning is a non-fatal condition surfaced next to the result.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Table   string      `json:"table,omitempty"` // "A" or "B"; empty when both are concerned
	Message string      `json:"message"`
	Rows    []int       `json:"rows,omitempty"` // 0-based data row indexes
	Keys    []string    `json:"keys,omitempty"`
	Columns []string    `json:"columns,omitempty"`
}
