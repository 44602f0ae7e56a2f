package repokit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dashkit/internal/core/query"
	"dashkit/internal/modkit/repokit"
	perr "dashkit/internal/platform/errors"
	"dashkit/internal/platform/store"
	"dashkit/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID        string
	Name      string
	Body      string
	CreatedAt time.Time
}

var notes = query.MustResource("note", "id",
	query.Order{{Field: "createdAt", Direction: query.Desc}},
	query.Field{Name: "id", Kind: query.KindString, Sortable: true},
	query.Field{Name: "name", Kind: query.KindString, Sortable: true, Searchable: true, Filterable: true},
	query.Field{Name: "body", Kind: query.KindString, Searchable: true},
	query.Field{Name: "createdAt", Kind: query.KindTime, Sortable: true},
)

var noteTable = repokit.Table[note]{
	Name: "notes",
	ID:   "id",
	Columns: map[string]string{
		"id":        "id",
		"name":      "name",
		"body":      "body",
		"createdAt": "created_at",
	},
	Select: "id, name, body, created_at",
	Scan: func(r repokit.Row) (note, error) {
		var n note
		err := r.Scan(&n.ID, &n.Name, &n.Body, &n.CreatedAt)
		return n, err
	},
}

const selectNotes = "SELECT id, name, body, created_at FROM notes"

var snapshot = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func noteRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "body", "created_at"})
}

func newNotes(t *testing.T) (*query.Executor[note], pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })

	tx := store.NewSQL(&pg.PG{Pool: mock, SlowMs: -1})
	src := repokit.NewListSource(tx, noteTable)
	return query.NewExecutor(notes, src, func(n note) string { return n.ID }), mock
}

func TestListSource_OffsetPageInOneSnapshot(t *testing.T) {
	exec, mock := newNotes(t)

	mock.ExpectBeginTx(snapshot)
	mock.ExpectQuery(selectNotes + " WHERE TRUE ORDER BY created_at DESC NULLS FIRST, id ASC NULLS LAST LIMIT $1 OFFSET $2").
		WithArgs(2, 2).
		WillReturnRows(noteRows().
			AddRow("c", "gamma", "", t0).
			AddRow("d", "delta", "", t0.Add(-time.Hour)))
	mock.ExpectQuery("SELECT count(*) FROM notes WHERE TRUE").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
	mock.ExpectCommit()

	page, err := exec.ListOffset(context.Background(), query.Normalize(query.RawQuery{Page: "2", Limit: "2"}))
	require.NoError(t, err)
	assert.Equal(t, query.Pagination{Total: 5, Page: 2, Limit: 2}, page.Pagination)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "c", page.Data[0].ID)
}

func TestListSource_SearchAndFilterRenderEscapedILike(t *testing.T) {
	exec, mock := newNotes(t)

	mock.ExpectBeginTx(snapshot)
	mock.ExpectQuery(selectNotes+` WHERE (name ILIKE '%' || $1 || '%' ESCAPE '\' AND `+
		`(name ILIKE '%' || $2 || '%' ESCAPE '\' OR body ILIKE '%' || $3 || '%' ESCAPE '\')) `+
		`ORDER BY name ASC NULLS LAST, id ASC NULLS LAST LIMIT $4`).
		WithArgs(`al`, `50\%\_off`, `50\%\_off`, 20).
		WillReturnRows(noteRows())
	mock.ExpectQuery(`SELECT count(*) FROM notes WHERE (name ILIKE '%' || $1 || '%' ESCAPE '\' AND ` +
		`(name ILIKE '%' || $2 || '%' ESCAPE '\' OR body ILIKE '%' || $3 || '%' ESCAPE '\'))`).
		WithArgs(`al`, `50\%\_off`, `50\%\_off`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectCommit()

	n := query.Normalize(query.RawQuery{
		SearchTerm: "50%_off",
		SortField:  "name",
		Filters:    map[string]string{"name": "al"},
	})
	page, err := exec.ListOffset(context.Background(), n)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
}

func TestListSource_CursorSeeksPastAnchor(t *testing.T) {
	exec, mock := newNotes(t)

	mock.ExpectBeginTx(snapshot)
	mock.ExpectQuery("SELECT created_at, id FROM notes WHERE id = $1").
		WithArgs("b").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "id"}).AddRow(t0, "b"))
	mock.ExpectQuery(selectNotes+" WHERE (created_at < $1 OR (created_at = $2 AND (id > $3 OR id IS NULL))) "+
		"ORDER BY created_at DESC NULLS FIRST, id ASC NULLS LAST LIMIT $4").
		WithArgs(t0, t0, "b", 3).
		WillReturnRows(noteRows().
			AddRow("c", "gamma", "", t0).
			AddRow("d", "delta", "", t0.Add(-time.Hour)).
			AddRow("e", "eps", "", t0.Add(-2*time.Hour)))
	mock.ExpectCommit()

	page, err := exec.ListCursor(context.Background(), query.Normalize(query.RawQuery{Cursor: "b", Limit: "2"}))
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "d", *page.NextCursor)
}

func TestListSource_UnknownCursorIsInvalidCursor(t *testing.T) {
	exec, mock := newNotes(t)

	mock.ExpectBeginTx(snapshot)
	mock.ExpectQuery("SELECT created_at, id FROM notes WHERE id = $1").
		WithArgs("gone").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := exec.ListCursor(context.Background(), query.Normalize(query.RawQuery{Cursor: "gone"}))
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeInvalidCursor, perr.CodeOf(err))
	assert.Equal(t, 400, perr.HTTPStatus(err))
}

func TestListSource_TransientFailureIsUnavailable(t *testing.T) {
	exec, mock := newNotes(t)

	mock.ExpectBeginTx(snapshot)
	mock.ExpectQuery(selectNotes + " WHERE TRUE ORDER BY created_at DESC NULLS FIRST, id ASC NULLS LAST LIMIT $1").
		WithArgs(20).
		WillReturnError(&pgconn.PgError{Code: "57P01", Message: "terminating connection"})
	mock.ExpectRollback()

	_, err := exec.ListOffset(context.Background(), query.Normalize(query.RawQuery{}))
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
}

func TestListSource_BeginFailureSurfaces(t *testing.T) {
	exec, mock := newNotes(t)
	mock.ExpectBeginTx(snapshot).WillReturnError(errors.New("pool exhausted"))

	_, err := exec.ListOffset(context.Background(), query.Normalize(query.RawQuery{}))
	assert.ErrorContains(t, err, "pool exhausted")
}

func TestListSource_ConnectionLostAtBeginIsUnavailable(t *testing.T) {
	exec, mock := newNotes(t)
	mock.ExpectBeginTx(snapshot).WillReturnError(&pgconn.PgError{Code: "08006", Message: "connection failure"})

	_, err := exec.ListOffset(context.Background(), query.Normalize(query.RawQuery{}))
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
	assert.Equal(t, 503, perr.HTTPStatus(err))
}

func TestListSource_SerializationFailureIsReplayedOnce(t *testing.T) {
	exec, mock := newNotes(t)
	listing := selectNotes + " WHERE TRUE ORDER BY created_at DESC NULLS FIRST, id ASC NULLS LAST LIMIT $1"
	conflict := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}

	mock.ExpectBeginTx(snapshot)
	mock.ExpectQuery(listing).WithArgs(20).WillReturnError(conflict)
	mock.ExpectRollback()
	mock.ExpectBeginTx(snapshot)
	mock.ExpectQuery(listing).WithArgs(20).WillReturnRows(noteRows().AddRow("a", "alpha", "", t0))
	mock.ExpectQuery("SELECT count(*) FROM notes WHERE TRUE").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectCommit()

	page, err := exec.ListOffset(context.Background(), query.Normalize(query.RawQuery{}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestListSource_SecondSerializationFailureSurfaces(t *testing.T) {
	exec, mock := newNotes(t)
	listing := selectNotes + " WHERE TRUE ORDER BY created_at DESC NULLS FIRST, id ASC NULLS LAST LIMIT $1"
	conflict := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}

	for range 2 {
		mock.ExpectBeginTx(snapshot)
		mock.ExpectQuery(listing).WithArgs(20).WillReturnError(conflict)
		mock.ExpectRollback()
	}

	_, err := exec.ListOffset(context.Background(), query.Normalize(query.RawQuery{}))
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeUnavailable, perr.CodeOf(err))
}

func TestNewListSource_PanicsOnBadTable(t *testing.T) {
	tx := store.NewSQL(&pg.PG{})
	bad := noteTable
	bad.Columns = map[string]string{"name": "name"}
	assert.Panics(t, func() { repokit.NewListSource(tx, bad) })

	bad = noteTable
	bad.Scan = nil
	assert.Panics(t, func() { repokit.NewListSource(tx, bad) })

	assert.Panics(t, func() { repokit.NewListSource[note](nil, noteTable) })
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, repokit.EscapeLike(`a%b_c\d`))
	assert.Equal(t, "plain", repokit.EscapeLike("plain"))
}
