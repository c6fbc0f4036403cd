package cider

import (
	"errors"
)

// ErrEmptyQuery is an error that is returned when the query text is empty.
var ErrEmptyQuery = errors.New("cider: empty query")

// ErrNotSelect is an error that is returned when a read operation is
// attempted on a statement which is not a select.
var ErrNotSelect = errors.New("cider: statement is not a select")

// ErrReadOnly is an error that is returned when a write operation is
// attempted on a select statement.
var ErrReadOnly = errors.New("cider: statement is read only")
