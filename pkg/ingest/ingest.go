// Package ingest populates the base tables from the upstream Ergast CSV
// dump: download the zip, extract it, bulk-copy every known file into
// its table, then seed the operator override tables from yaml.
package ingest

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridbox/f1derive/log"
)

const (
	DefaultErgastURL = "https://ergast.com/downloads/f1db_csv.zip"
	archiveName      = "f1db_csv.zip"
)

type Loader struct {
	pool         *pgxpool.Pool
	l            *log.Logger
	client       *http.Client
	url          string
	dataDir      string
	skipDownload bool
}

type LoaderOption func(ld *Loader)

func WithLogger(l *log.Logger) LoaderOption {
	return func(ld *Loader) { ld.l = l }
}

func WithURL(url string) LoaderOption {
	return func(ld *Loader) { ld.url = url }
}

func WithDataDir(dir string) LoaderOption {
	return func(ld *Loader) { ld.dataDir = dir }
}

// WithSkipDownload reuses an already downloaded archive in the data dir.
func WithSkipDownload(skip bool) LoaderOption {
	return func(ld *Loader) { ld.skipDownload = skip }
}

func WithHTTPClient(client *http.Client) LoaderOption {
	return func(ld *Loader) { ld.client = client }
}

func NewLoader(pool *pgxpool.Pool, opts ...LoaderOption) *Loader {
	ret := &Loader{
		pool:    pool,
		l:       log.Default().Named("ingest"),
		client:  http.DefaultClient,
		url:     DefaultErgastURL,
		dataDir: ".",
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Run downloads (unless skipped) and loads the full dump. Base tables
// are truncated first, so ingest is idempotent.
func (ld *Loader) Run(ctx context.Context) error {
	archive := filepath.Join(ld.dataDir, archiveName)
	if ld.skipDownload {
		if _, err := os.Stat(archive); err != nil {
			return fmt.Errorf("download skipped but archive missing: %w", err)
		}
	} else {
		if err := ld.download(ctx, archive); err != nil {
			return err
		}
	}
	return ld.loadArchive(ctx, archive)
}

func (ld *Loader) download(ctx context.Context, dest string) error {
	ld.l.Info("downloading dump", log.String("url", ld.url))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ld.url, nil)
	if err != nil {
		return err
	}
	resp, err := ld.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", ld.url, resp.Status)
	}
	if err := os.MkdirAll(ld.dataDir, 0o755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return err
	}
	ld.l.Info("download complete", log.Int("bytes", int(n)))
	return nil
}

func (ld *Loader) loadArchive(ctx context.Context, archive string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, spec := range tables {
		f, err := openArchiveFile(&zr.Reader, spec.file)
		if err != nil {
			return err
		}
		rows, err := ld.loadTable(ctx, spec, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load %s: %w", spec.table, err)
		}
		ld.l.Info("table loaded",
			log.String("table", spec.table), log.Int("rows", rows))
	}
	return nil
}

func openArchiveFile(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("archive has no %s", name)
}

// loadTable truncates the table and streams the CSV rows in via the
// copy protocol. Unknown CSV columns are ignored; known columns missing
// from the header fail the load.
func (ld *Loader) loadTable(
	ctx context.Context, spec tableSpec, src io.Reader,
) (int, error) {
	reader := csv.NewReader(src)
	header, err := reader.Read()
	if err != nil {
		return 0, err
	}
	headerIdx := make(map[string]int)
	for i, name := range header {
		headerIdx[name] = i
	}
	indices := make([]int, len(spec.columns))
	for i, col := range spec.columns {
		idx, ok := headerIdx[col.csv]
		if !ok {
			return 0, fmt.Errorf("header misses column %s", col.csv)
		}
		indices[i] = idx
	}

	if _, err := ld.pool.Exec(ctx,
		fmt.Sprintf(`truncate table %s cascade`, spec.table)); err != nil {
		return 0, err
	}

	dbColumns := make([]string, len(spec.columns))
	for i, col := range spec.columns {
		dbColumns[i] = col.db
	}
	n, err := ld.pool.CopyFrom(ctx,
		pgx.Identifier{spec.table},
		dbColumns,
		pgx.CopyFromFunc(func() ([]any, error) {
			rec, err := reader.Read()
			if err == io.EOF {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			row := make([]any, len(spec.columns))
			for i, col := range spec.columns {
				row[i], err = col.convert(rec[indices[i]])
				if err != nil {
					return nil, err
				}
			}
			return row, nil
		}))
	return int(n), err
}
