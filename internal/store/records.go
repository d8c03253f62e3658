package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/registro/internal/db"
	"github.com/erazemk/registro/internal/model"
	"github.com/erazemk/registro/internal/query"
)

// recordColumns is the column order every record query selects.
var recordColumns = []string{
	"id", "name", "surname", "amount", "country", "agent_type", "status", "recorded_at",
}

// fieldColumns maps filter fields to table columns.
var fieldColumns = map[query.Field]string{
	query.FieldName:      "name",
	query.FieldSurname:   "surname",
	query.FieldCountry:   "country",
	query.FieldStatus:    "status",
	query.FieldAgentType: "agent_type",
	query.FieldDate:      "recorded_at",
	query.FieldAmount:    "amount",
}

// Records reads and writes one record table.
type Records struct {
	db    *sql.DB
	table string
	sb    sq.StatementBuilderType
	like  string
}

// NewRecords returns a store for table using the SQL dialect of driver.
func NewRecords(database *sql.DB, driver, table string) *Records {
	s := &Records{
		db:    database,
		table: table,
		sb:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
		like:  "LIKE",
	}
	if driver == db.DriverPostgres {
		s.sb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		s.like = "ILIKE"
	}
	return s
}

// Create inserts r and returns the stored record.
func (s *Records) Create(ctx context.Context, r *model.Record) (*model.Record, error) {
	q, args, err := s.sb.Insert(s.table).
		Columns("name", "surname", "amount", "country", "agent_type", "status", "recorded_at").
		Values(r.Name, r.Surname, r.Amount, r.Country, r.AgentType, r.Status, r.Date.UnixMilli()).
		Suffix("RETURNING " + strings.Join(recordColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert: %w", err)
	}

	created, err := scanRecord(s.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, fmt.Errorf("creating record: %w", err)
	}
	return created, nil
}

// Get returns a record by ID, or nil if it does not exist.
func (s *Records) Get(ctx context.Context, id int64) (*model.Record, error) {
	q, args, err := s.sb.Select(recordColumns...).From(s.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	r, err := scanRecord(s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}
	return r, nil
}

// Update overwrites the editable fields and date of an active record.
// It returns nil if no active record with r.ID exists.
func (s *Records) Update(ctx context.Context, r *model.Record) (*model.Record, error) {
	q, args, err := s.sb.Update(s.table).
		Set("name", r.Name).
		Set("surname", r.Surname).
		Set("amount", r.Amount).
		Set("country", r.Country).
		Set("agent_type", r.AgentType).
		Set("recorded_at", r.Date.UnixMilli()).
		Where(sq.Eq{"id": r.ID, "status": model.StatusActive}).
		Suffix("RETURNING " + strings.Join(recordColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update: %w", err)
	}

	updated, err := scanRecord(s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}
	return updated, nil
}

// Deactivate soft-deletes an active record. It reports false if no active
// record with id exists.
func (s *Records) Deactivate(ctx context.Context, id int64) (bool, error) {
	q, args, err := s.sb.Update(s.table).
		Set("status", model.StatusInactive).
		Where(sq.Eq{"id": id, "status": model.StatusActive}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("building update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("deactivating record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting affected rows: %w", err)
	}
	return n > 0, nil
}

// SetDate overwrites a record's date regardless of its status.
// It returns nil if the record does not exist.
func (s *Records) SetDate(ctx context.Context, id int64, date time.Time) (*model.Record, error) {
	q, args, err := s.sb.Update(s.table).
		Set("recorded_at", date.UnixMilli()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(recordColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update: %w", err)
	}

	updated, err := scanRecord(s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("setting record date: %w", err)
	}
	return updated, nil
}

// List returns one page of the records matching every predicate, newest first.
func (s *Records) List(ctx context.Context, preds []query.Predicate, page query.Page) ([]model.Record, error) {
	where, err := conditions(preds, s.like)
	if err != nil {
		return nil, err
	}

	sel := s.sb.Select(recordColumns...).From(s.table).
		OrderBy("recorded_at DESC", "id DESC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset()))
	if len(where) > 0 {
		sel = sel.Where(where)
	}

	q, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// Count returns how many records match every predicate.
func (s *Records) Count(ctx context.Context, preds []query.Predicate) (int64, error) {
	where, err := conditions(preds, s.like)
	if err != nil {
		return 0, err
	}

	sel := s.sb.Select("COUNT(*)").From(s.table)
	if len(where) > 0 {
		sel = sel.Where(where)
	}

	q, args, err := sel.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return total, nil
}

// conditions translates predicates into squirrel expressions. like is the
// substring operator of the dialect.
func conditions(preds []query.Predicate, like string) (sq.And, error) {
	var where sq.And
	for _, p := range preds {
		switch p := p.(type) {
		case query.Contains:
			col, err := column(p.Field)
			if err != nil {
				return nil, err
			}
			where = append(where, sq.Expr(
				fmt.Sprintf(`%s %s ? ESCAPE '\'`, col, like),
				"%"+escapeLike(p.Value)+"%",
			))
		case query.In:
			col, err := column(p.Field)
			if err != nil {
				return nil, err
			}
			where = append(where, sq.Eq{col: p.Values})
		case query.TimeRange:
			col, err := column(p.Field)
			if err != nil {
				return nil, err
			}
			if p.From != nil {
				where = append(where, sq.GtOrEq{col: p.From.UnixMilli()})
			}
			if p.To != nil {
				where = append(where, sq.LtOrEq{col: p.To.UnixMilli()})
			}
		case query.IntRange:
			col, err := column(p.Field)
			if err != nil {
				return nil, err
			}
			if p.Min != nil {
				where = append(where, sq.GtOrEq{col: *p.Min})
			}
			if p.Max != nil {
				where = append(where, sq.LtOrEq{col: *p.Max})
			}
		default:
			return nil, fmt.Errorf("unsupported predicate %T", p)
		}
	}
	return where, nil
}

func column(f query.Field) (string, error) {
	col, ok := fieldColumns[f]
	if !ok {
		return "", fmt.Errorf("unknown filter field %q", f)
	}
	return col, nil
}

// escapeLike makes %, _ and \ match literally in a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.Record, error) {
	r := &model.Record{}
	var recordedAt int64
	if err := row.Scan(&r.ID, &r.Name, &r.Surname, &r.Amount, &r.Country, &r.AgentType, &r.Status, &recordedAt); err != nil {
		return nil, err
	}
	r.Date = time.UnixMilli(recordedAt).UTC()
	return r, nil
}
