package mysql

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Extractor dumps source tables from the operational MySQL database into
// CSV files the audit reads as "extracted" datasets.
type Extractor struct {
	db *sql.DB
}

func NewExtractor(dsn string) (*Extractor, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	return &Extractor{db: db}, nil
}

// ExtractTable streams one table into <dir>/<name>.csv, where name is the
// table name without its "table_" prefix. NULLs become empty cells.
func (e *Extractor) ExtractTable(ctx context.Context, table, dir string) (string, error) {
	query := fmt.Sprintf("SELECT * FROM `%s`", table)
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", err
	}

	name := strings.TrimPrefix(table, "table_")
	path := filepath.Join(dir, name+".csv")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return "", err
	}

	values := make([]sql.NullString, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	record := make([]string, len(columns))
	count := 0
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return "", fmt.Errorf("scan %s: %w", table, err)
		}
		for i, v := range values {
			if v.Valid {
				record[i] = v.String
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	fmt.Printf("  ✅ %s: %d rows -> %s\n", table, count, path)
	return path, nil
}

// ExtractAll dumps every configured table, logging failures and moving on.
func (e *Extractor) ExtractAll(ctx context.Context, tables []string, dir string) error {
	fmt.Printf("📥 Extracting %d tables from MySQL...\n", len(tables))
	var failed int
	for _, table := range tables {
		if _, err := e.ExtractTable(ctx, table, dir); err != nil {
			fmt.Printf("  ❌ %s: %v\n", table, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tables failed to extract", failed, len(tables))
	}
	return nil
}

func (e *Extractor) Close() error {
	return e.db.Close()
}
