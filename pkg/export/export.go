// Package export writes any base or derived table as CSV, mirroring the
// upstream dump conventions (header row, \N for NULL).
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gridbox/f1derive/log"
)

var identifier = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type Exporter struct {
	pool *pgxpool.Pool
	l    *log.Logger
}

type ExporterOption func(e *Exporter)

func WithLogger(l *log.Logger) ExporterOption {
	return func(e *Exporter) { e.l = l }
}

func NewExporter(pool *pgxpool.Pool, opts ...ExporterOption) *Exporter {
	ret := &Exporter{pool: pool, l: log.Default().Named("export")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// WriteTable streams the full table to w as CSV. The table name is
// validated against a strict identifier pattern since it is interpolated
// into the query text.
func (e *Exporter) WriteTable(ctx context.Context, w io.Writer, table string) error {
	if !identifier.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	rows, err := e.pool.Query(ctx, fmt.Sprintf(`select * from %s`, table))
	if err != nil {
		return err
	}
	defer rows.Close()

	out := csv.NewWriter(w)
	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i := range fields {
		header[i] = fields[i].Name
	}
	if err := out.Write(header); err != nil {
		return err
	}

	count := 0
	record := make([]string, len(fields))
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return err
		}
		for i, v := range values {
			record[i] = render(v)
		}
		if err := out.Write(record); err != nil {
			return err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return err
	}
	e.l.Info("table exported",
		log.String("table", table), log.Int("rows", count))
	return nil
}

func render(v any) string {
	switch val := v.(type) {
	case nil:
		return `\N`
	case string:
		return val
	case int32:
		return strconv.Itoa(int(val))
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	case decimal.Decimal:
		return val.String()
	case pgtype.Numeric:
		if !val.Valid {
			return `\N`
		}
		if text, err := val.Value(); err == nil {
			return fmt.Sprint(text)
		}
		return `\N`
	default:
		return fmt.Sprint(val)
	}
}
