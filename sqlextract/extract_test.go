package sqlextract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ciderkit/cider"
	"github.com/ciderkit/cider/driver"
)

// rawQuery is a query handle that does not come from the engine.
// It stands in for pass-through or foreign query objects.
type rawQuery struct {
	text   string
	params map[int]any
}

func (q *rawQuery) QueryString() string { return q.text }

func (q *rawQuery) Parameters() []cider.Parameter {
	params := make([]cider.Parameter, 0, len(q.params))
	for position := range q.params {
		params = append(params, &rawParameter{position: position})
	}
	return params
}

func (q *rawQuery) ParameterValue(position int) (any, error) {
	value, ok := q.params[position]
	if !ok {
		return nil, fmt.Errorf("no parameter at position %d", position)
	}
	return value, nil
}

type rawParameter struct {
	position int
}

func (p *rawParameter) Name() string { return fmt.Sprintf("p%d", p.position) }

func (p *rawParameter) Position() int { return p.position }

// wrappedQuery wraps another handle the way user-level decorators do.
type wrappedQuery struct {
	cider.Query
}

func (w *wrappedQuery) Unwrap() cider.Query { return w.Query }

func newHandle(t *testing.T, drv driver.Driver, text string) *cider.SQLQuery {
	t.Helper()
	query, err := cider.NewEngine(drv, nil).Query(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return query
}

func TestFromReturnsGeneratedSQL(t *testing.T) {
	query := newHandle(t, driver.MySQLDriver{}, "select id, name from users where id = #{id} and status = #{status}")
	sql, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "select id, name from users where id = ? and status = ?"
	if sql != want {
		t.Errorf("expected %q, got %q", want, sql)
	}
	if sql == query.QueryString() {
		t.Error("expected generated SQL to differ from the authored text")
	}
}

func TestFromPostgresDialect(t *testing.T) {
	query := newHandle(t, driver.PostgresDriver{}, "select * from users where id = #{id} and status = #{status}")
	sql, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "select * from users where id = $1 and status = $2"
	if sql != want {
		t.Errorf("expected %q, got %q", want, sql)
	}
}

func TestFromPassThroughQuery(t *testing.T) {
	text := "select u from User u where u.id = :id"
	sql, err := From(&rawQuery{text: text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != text {
		t.Errorf("expected the authored text byte for byte, got %q", sql)
	}
}

func TestFromWrappedQuery(t *testing.T) {
	query := newHandle(t, driver.MySQLDriver{}, "select * from users where id = #{id}")
	sql, err := From(&wrappedQuery{Query: &wrappedQuery{Query: query}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "select * from users where id = ?" {
		t.Errorf("unexpected sql: %q", sql)
	}
}

func TestFromNonSelectFallsBack(t *testing.T) {
	text := "update users set name = #{name} where id = #{id}"
	query := newHandle(t, driver.MySQLDriver{}, text)
	sql, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != text {
		t.Errorf("expected the authored text, got %q", sql)
	}
}

func TestFromIdempotent(t *testing.T) {
	query := newHandle(t, driver.MySQLDriver{}, "select * from users where id = #{id}")
	first, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected identical output, got %q and %q", first, second)
	}
}

func TestFromExpandedQuery(t *testing.T) {
	query := newHandle(t, driver.MySQLDriver{}, "select * from ${table} where id = #{id}")
	if err := query.Bind("table", "users"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sql, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "select * from users where id = ?" {
		t.Errorf("unexpected sql: %q", sql)
	}
	// value-dependent SQL is never cached
	if size := query.Engine().InterpretationCache().Size(); size != 0 {
		t.Errorf("expected no cached plans, got %d", size)
	}
}

func TestFromExpandedQueryUnbound(t *testing.T) {
	text := "select * from ${table} where id = #{id}"
	query := newHandle(t, driver.MySQLDriver{}, text)
	sql, err := From(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != text {
		t.Errorf("expected the authored text, got %q", sql)
	}
}

func TestFromPopulatesPlanCache(t *testing.T) {
	engine := cider.NewEngine(driver.MySQLDriver{}, nil)
	for i := 0; i < 3; i++ {
		query, err := engine.Query("select * from users where id = #{id}")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := From(query); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if size := engine.InterpretationCache().Size(); size != 1 {
		t.Errorf("expected a single cached plan, got %d", size)
	}
}

func TestFromNilQuery(t *testing.T) {
	if _, err := From(nil); !errors.Is(err, ErrNilQuery) {
		t.Errorf("expected ErrNilQuery, got %v", err)
	}
	var query *cider.SQLQuery
	if _, err := From(query); !errors.Is(err, ErrNilQuery) {
		t.Errorf("expected ErrNilQuery for typed nil, got %v", err)
	}
}

func TestParameterValuesBindOrder(t *testing.T) {
	query := newHandle(t, driver.MySQLDriver{}, "select * from t where id = #{id} and name = #{name} and active = #{active}")
	query.MustBind("id", 1).MustBind("name", "a").MustBind("active", true)

	values, err := ParameterValues(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 3 || values[0] != 1 || values[1] != "a" || values[2] != true {
		t.Errorf("expected [1 a true] in bind order, got %v", values)
	}
}

func TestParameterValuesFallback(t *testing.T) {
	query := &rawQuery{
		text:   "select * from t where a = ? and b = ? and c = ?",
		params: map[int]any{1: 1, 2: "a", 3: true},
	}
	values, err := ParameterValues(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	// ordering is not promised on this path; assert membership only
	seen := map[any]bool{}
	for _, value := range values {
		seen[value] = true
	}
	for _, want := range []any{1, "a", true} {
		if !seen[want] {
			t.Errorf("missing value %v in %v", want, values)
		}
	}
}

func TestParameterValuesEmpty(t *testing.T) {
	query := newHandle(t, driver.MySQLDriver{}, "select * from t")
	values, err := ParameterValues(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values == nil || len(values) != 0 {
		t.Errorf("expected an empty non-nil slice, got %v", values)
	}
}

func TestParameterValuesNilQuery(t *testing.T) {
	if _, err := ParameterValues(nil); !errors.Is(err, ErrNilQuery) {
		t.Errorf("expected ErrNilQuery, got %v", err)
	}
}
