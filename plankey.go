package cider

import (
	"fmt"
)

// InterpretationKey identifies a cacheable query plan inside the
// engine's shared interpretation cache. Two handles derive equal keys
// when they compile to the same SQL, which for this engine means the
// same authored text under the same dialect.
type InterpretationKey struct {
	query   string
	dialect string
}

// CreateInterpretationKey derives the cache key for the given handle.
//
// It returns nil when the query is not cacheable: statements with ${}
// expansions produce value-dependent SQL, so their plans must be built
// per handle.
func CreateInterpretationKey(q *SQLQuery) *InterpretationKey {
	if q == nil || q.Statement().Tree().HasExpansion() {
		return nil
	}
	return &InterpretationKey{
		query:   q.Statement().Raw(),
		dialect: dialectName(q),
	}
}

// dialectName returns a stable identifier of the handle's dialect.
func dialectName(q *SQLQuery) string {
	drv := q.Driver()
	if s, ok := drv.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", drv)
}
