// Package export orchestrates one dump run: read the SQLite schema,
// render MySQL statements table by table, and write the finished
// document in a single operation.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dbconvert/sqlite2mysql/internal/logging"
	"github.com/dbconvert/sqlite2mysql/internal/mysql"
	"github.com/dbconvert/sqlite2mysql/internal/progress"
	"github.com/dbconvert/sqlite2mysql/internal/sqlite"
)

// Error kinds. Every failure aborts the whole run; these let callers
// tell connection, metadata, row-scan and write failures apart with
// errors.Is.
var (
	ErrConnection = errors.New("connection error")
	ErrSchemaRead = errors.New("schema read error")
	ErrRowRead    = errors.New("row read error")
	ErrWrite      = errors.New("write error")
)

// now is overridable for deterministic timestamps in tests.
var now = time.Now

// Options configures one export run.
type Options struct {
	// Source is the SQLite database file to read.
	Source string

	// Output is the destination path. Overwritten if it exists.
	Output string

	// ExcludeTables are user tables to leave out of the dump.
	ExcludeTables []string

	// Progress enables a per-table progress bar.
	Progress bool
}

// Summary describes a completed run.
type Summary struct {
	RunID    string
	Tables   int
	Rows     int64
	Bytes    int
	Duration time.Duration
}

// Exporter performs one export run. It owns the source connection for
// the whole run; nothing else may use it concurrently.
type Exporter struct {
	opts Options
}

// New creates an exporter.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Run executes the export. On any error nothing is written: the
// document lives in memory until every table has been read, then hits
// disk in one write.
func (e *Exporter) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	start := now()
	logging.Info("Starting export run %s: %s -> %s", runID, e.opts.Source, e.opts.Output)

	reader, err := sqlite.Open(e.opts.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer reader.Close()

	tables, err := reader.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	excluded := make(map[string]bool, len(e.opts.ExcludeTables))
	for _, t := range e.opts.ExcludeTables {
		excluded[t] = true
	}

	doc := newDocument()
	doc.appendln("-- SQLite to MySQL dump")
	doc.appendln("-- Generated: " + start.Format(time.RFC3339))
	doc.blank()

	summary := &Summary{RunID: runID}
	for _, name := range tables {
		if excluded[name] {
			logging.Debug("Skipping excluded table %s", name)
			continue
		}

		rows, err := e.dumpTable(ctx, reader, name, doc)
		if err != nil {
			return nil, err
		}
		summary.Tables++
		summary.Rows += rows
	}

	data := doc.bytes()
	if err := os.WriteFile(e.opts.Output, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	summary.Bytes = len(data)
	summary.Duration = now().Sub(start)
	logging.Info("Export run %s done: %d tables, %d rows, %d bytes in %s",
		runID, summary.Tables, summary.Rows, summary.Bytes, summary.Duration.Round(time.Millisecond))
	return summary, nil
}

// dumpTable appends one table's definition and data to the document
// and returns the number of rows written.
func (e *Exporter) dumpTable(ctx context.Context, reader *sqlite.Reader, name string, doc *document) (int64, error) {
	tbl, err := reader.Table(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("%w: table %s: %w", ErrSchemaRead, name, err)
	}

	doc.appendln("-- Table: " + name)
	doc.appendln(mysql.CreateTable(tbl))
	doc.blank()

	if tbl.RowCount == 0 {
		logging.Debug("Table %s is empty", name)
		return 0, nil
	}

	doc.appendln("-- Data for table: " + name)

	iter, err := reader.Rows(ctx, name, tbl.Columns)
	if err != nil {
		return 0, fmt.Errorf("%w: table %s: %w", ErrRowRead, name, err)
	}
	defer iter.Close()

	tracker := progress.New(name, tbl.RowCount, e.opts.Progress)
	for values := iter.Next(); values != nil; values = iter.Next() {
		doc.appendln(mysql.Insert(tbl, values))
		tracker.Add(1)
	}
	tracker.Finish()

	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("%w: table %s: %w", ErrRowRead, name, err)
	}

	doc.blank()
	logging.Debug("Dumped %d rows from %s", tracker.Current(), name)
	return tracker.Current(), nil
}

// document accumulates output lines. It is owned by the exporter and
// never shared; the whole document is materialized before any byte is
// written to disk.
type document struct {
	lines []string
}

func newDocument() *document {
	return &document{}
}

func (d *document) appendln(line string) {
	d.lines = append(d.lines, line)
}

func (d *document) blank() {
	d.lines = append(d.lines, "")
}

func (d *document) bytes() []byte {
	return []byte(strings.Join(d.lines, "\n"))
}
