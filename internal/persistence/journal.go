// Package persistence provides the SQLite-backed chart journal.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Kinds of chart a journal record can hold.
const (
	KindHour    = "hour"
	KindMinute  = "minute"
	KindDay     = "day"
	KindOverall = "overall"
)

// createdLayout keeps every created_at the same width so that text order
// is time order.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// shortIDLen is the id prefix shown in listings.
const shortIDLen = 8

var (
	// ErrNotFound is returned by Get when no record has the given id.
	ErrNotFound = errors.New("journal record not found")
	// ErrAmbiguousID is returned by Get when an id prefix matches several records.
	ErrAmbiguousID = errors.New("ambiguous journal record id")
	// ErrInvalidRecord is returned by Save for records missing a kind or payload.
	ErrInvalidRecord = errors.New("invalid journal record")
)

// Record is one saved chart.
type Record struct {
	ID        string    `db:"id" json:"id"`
	Moment    string    `db:"moment" json:"moment"`
	Method    int       `db:"method" json:"method"`
	Kind      string    `db:"kind" json:"kind"`
	Bureau    string    `db:"bureau" json:"bureau"`
	Payload   string    `db:"payload" json:"payload"`
	CreatedAt time.Time `db:"-" json:"created_at"`
	Created   string    `db:"created_at" json:"-"`
}

// NewRecord builds a record for chart, serialising it as the payload.
func NewRecord(m domain.Moment, method domain.Method, kind, bureau string, chart any) (Record, error) {
	payload, err := json.Marshal(chart)
	if err != nil {
		return Record{}, fmt.Errorf("marshal chart: %w", err)
	}
	return Record{
		Moment:  m.String(),
		Method:  int(method),
		Kind:    kind,
		Bureau:  bureau,
		Payload: string(payload),
	}, nil
}

// ShortID returns the id prefix shown in listings.
func (r Record) ShortID() string {
	if len(r.ID) <= shortIDLen {
		return r.ID
	}
	return r.ID[:shortIDLen]
}

// Decode unmarshals the payload into v.
func (r Record) Decode(v any) error {
	return json.Unmarshal([]byte(r.Payload), v)
}

// Chart decodes the payload into the chart type its kind names.
func (r Record) Chart() (any, error) {
	switch r.Kind {
	case KindHour:
		return decodeAs[domain.HourChart](r)
	case KindMinute:
		return decodeAs[domain.MinuteChart](r)
	case KindDay:
		return decodeAs[domain.DayChart](r)
	case KindOverall:
		return decodeAs[domain.Overall](r)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, r.Kind)
	}
}

func decodeAs[T any](r Record) (any, error) {
	var v T
	if err := r.Decode(&v); err != nil {
		return nil, fmt.Errorf("record %s: decode %s chart: %w", r.ID, r.Kind, err)
	}
	return v, nil
}

// Journal wraps a SQLite connection holding saved charts.
type Journal struct {
	conn   *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens or creates a journal database at the given path.
func Open(path string, logger *zap.Logger) (*Journal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	j := &Journal{conn: conn, logger: logger, now: time.Now}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Debug("journal opened", zap.String("path", path))
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS charts (
		id TEXT PRIMARY KEY,
		moment TEXT NOT NULL,
		method INTEGER NOT NULL,
		kind TEXT NOT NULL,
		bureau TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_charts_created ON charts(created_at);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// Save stores r under a fresh id and returns the stored record.
func (j *Journal) Save(ctx context.Context, r Record) (Record, error) {
	if r.Kind == "" || r.Payload == "" {
		return Record{}, ErrInvalidRecord
	}
	r.ID = uuid.NewString()
	r.CreatedAt = j.now().UTC()
	r.Created = r.CreatedAt.Format(createdLayout)

	_, err := j.conn.NamedExecContext(ctx, `INSERT INTO charts
		(id, moment, method, kind, bureau, payload, created_at)
		VALUES (:id, :moment, :method, :kind, :bureau, :payload, :created_at)`, r)
	if err != nil {
		return Record{}, fmt.Errorf("save chart: %w", err)
	}

	j.logger.Debug("chart saved",
		zap.String("id", r.ID),
		zap.String("moment", r.Moment),
		zap.String("kind", r.Kind),
	)
	return r, nil
}

// List returns the most recent records, newest first. A limit of zero or
// less returns every record.
func (j *Journal) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	var records []Record
	err := j.conn.SelectContext(ctx, &records,
		`SELECT id, moment, method, kind, bureau, payload, created_at
		FROM charts ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}
	for i := range records {
		if err := records[i].parseCreated(); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Get returns the record whose id is id or, failing that, the single record
// whose id starts with it.
func (j *Journal) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	var records []Record
	err := j.conn.SelectContext(ctx, &records,
		`SELECT id, moment, method, kind, bureau, payload, created_at
		FROM charts WHERE substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		len(id), id,
	)
	if err != nil {
		return Record{}, fmt.Errorf("get chart: %w", err)
	}
	switch {
	case len(records) == 0:
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case len(records) > 1 && records[0].ID != id:
		return Record{}, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
	r := records[0]
	return r, r.parseCreated()
}

func (r *Record) parseCreated() error {
	t, err := time.Parse(time.RFC3339Nano, r.Created)
	if err != nil {
		return fmt.Errorf("record %s: bad created_at: %w", r.ID, err)
	}
	r.CreatedAt = t
	return nil
}
