package cider

import "strings"

// Action defines a sql action.
type Action string

const (
	// Select is an action for query
	Select Action = "select"

	// Insert is an action for insert
	Insert Action = "insert"

	// Update is an action for update
	Update Action = "update"

	// Delete is an action for delete
	Delete Action = "delete"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) ForRead() bool {
	return a == Select
}

func (a Action) ForWrite() bool {
	return a == Insert || a == Update || a == Delete
}

// parseAction reports the action of the given query text.
// The action is taken from the leading keyword; anything else is
// returned as-is so callers can decide how to treat it.
func parseAction(query string) Action {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return Action("")
	}
	return Action(strings.ToLower(fields[0]))
}
