package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// capturedQuery records one statement as it reaches the driver.
type capturedQuery struct {
	query string
	args  []driver.NamedValue
}

type fakeConn struct {
	mu       sync.Mutex
	queries  []capturedQuery
	rows     [][]driver.Value
	queryErr error
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, capturedQuery{query: query, args: args})
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return &fakeRows{data: c.rows}, nil
}

func (c *fakeConn) lastQuery() capturedQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queries) == 0 {
		return capturedQuery{}
	}
	return c.queries[len(c.queries)-1]
}

type fakeRows struct {
	data [][]driver.Value
	pos  int
}

func (r *fakeRows) Columns() []string {
	return []string{
		"meter_value_id", "station_id", "evse_id", "connector_id",
		"transaction_id", "sampled_at", "location", "created_at",
	}
}

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}

type fakeConnector struct {
	conn *fakeConn
}

func (c fakeConnector) Connect(ctx context.Context) (driver.Conn, error) { return c.conn, nil }

func (c fakeConnector) Driver() driver.Driver { return nil }

func newMeterValueTest(conn *fakeConn) *MeterValueRepository {
	return NewMeterValueRepository(sql.OpenDB(fakeConnector{conn: conn}))
}

func sampleRows(times ...time.Time) [][]driver.Value {
	rows := make([][]driver.Value, 0, len(times))
	for i, ts := range times {
		rows = append(rows, []driver.Value{
			int64(len(times) - i), int64(1), int64(2), nil, nil, ts, "Outlet", ts,
		})
	}
	return rows
}

func TestRecentMeterValuesDefaultLimits(t *testing.T) {
	cases := []struct {
		name  string
		query func(*MeterValueRepository, context.Context, int) error
		want  int64
	}{
		{
			name: "station",
			query: func(r *MeterValueRepository, ctx context.Context, limit int) error {
				_, err := r.RecentByStation(ctx, 1, limit)
				return err
			},
			want: DefaultStationMeterLimit,
		},
		{
			name: "evse",
			query: func(r *MeterValueRepository, ctx context.Context, limit int) error {
				_, err := r.RecentByEvse(ctx, 2, limit)
				return err
			},
			want: DefaultEvseMeterLimit,
		},
		{
			name: "connector",
			query: func(r *MeterValueRepository, ctx context.Context, limit int) error {
				_, err := r.RecentByConnector(ctx, 3, limit)
				return err
			},
			want: DefaultConnectorMeterLimit,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn := &fakeConn{}
			repo := newMeterValueTest(conn)

			for _, limit := range []int{0, -5} {
				if err := tc.query(repo, context.Background(), limit); err != nil {
					t.Fatalf("limit %d: %v", limit, err)
				}
				got := conn.lastQuery()
				if len(got.args) != 2 {
					t.Fatalf("limit %d: %d query args, want 2", limit, len(got.args))
				}
				if got.args[1].Value != tc.want {
					t.Errorf("limit %d sent as %v, want default %d", limit, got.args[1].Value, tc.want)
				}
			}

			// a positive limit passes through untouched
			if err := tc.query(repo, context.Background(), 7); err != nil {
				t.Fatalf("limit 7: %v", err)
			}
			if got := conn.lastQuery(); got.args[1].Value != int64(7) {
				t.Errorf("limit 7 sent as %v", got.args[1].Value)
			}
		})
	}
}

func TestRecentMeterValuesQueryShape(t *testing.T) {
	conn := &fakeConn{}
	repo := newMeterValueTest(conn)

	if _, err := repo.RecentByStation(context.Background(), 1, 10); err != nil {
		t.Fatalf("RecentByStation: %v", err)
	}
	query := conn.lastQuery().query
	if !strings.Contains(query, "ORDER BY sampled_at DESC") {
		t.Errorf("query missing recency ordering:\n%s", query)
	}
	if !strings.Contains(query, "LIMIT $2") {
		t.Errorf("query missing parameterized limit:\n%s", query)
	}
}

func TestRecentMeterValuesPreserveRecencyOrder(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	conn := &fakeConn{rows: sampleRows(
		base.Add(2*time.Hour),
		base.Add(time.Hour),
		base,
	)}
	repo := newMeterValueTest(conn)

	values, err := repo.RecentByStation(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("RecentByStation: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	for i := 1; i < len(values); i++ {
		if values[i].SampledAt.After(values[i-1].SampledAt) {
			t.Errorf("sampledAt increases at index %d: %v after %v",
				i, values[i].SampledAt, values[i-1].SampledAt)
		}
	}
	if values[0].ConnectorID != nil || values[0].TransactionID != nil {
		t.Errorf("null columns must map to nil pointers: %+v", values[0])
	}
}

func TestRecentMeterValuesWrapFailures(t *testing.T) {
	conn := &fakeConn{queryErr: errors.New("connection reset")}
	repo := newMeterValueTest(conn)

	_, err := repo.RecentByStation(context.Background(), 1, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	var dae *DataAccessError
	if !errors.As(err, &dae) {
		t.Fatalf("error %T is not a DataAccessError", err)
	}
}
