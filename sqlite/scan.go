package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/pagescope"
)

// Compile-time interface verification.
var _ pagescope.ScanService = (*ScanService)(nil)

// ScanService implements pagescope.ScanService using SQLite. Scans are
// insert-only; the result payload is stored as JSON.
type ScanService struct {
	db *DB
}

// NewScanService creates a new ScanService.
func NewScanService(db *DB) *ScanService {
	return &ScanService{db: db}
}

const scanColumns = "id, action_id, action_label, page_url, page_title, content_hash, data, created_at"

// CreateScan stores a new scan.
func (s *ScanService) CreateScan(ctx context.Context, scan *pagescope.StoredScan) error {
	if err := scan.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(scan.Data)
	if err != nil {
		return fmt.Errorf("failed to encode scan data: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO scans (`+scanColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, scan.ScanID, string(scan.ActionID), scan.ActionLabel, scan.PageURL, scan.PageTitle,
		scan.ContentHash, string(data), formatTime(scan.CreatedAt))
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagescope.Errorf(pagescope.ECONFLICT, "scan %s already exists", scan.ScanID)
	}
	return nil
}

// FindScanByID retrieves a scan by ID.
func (s *ScanService) FindScanByID(ctx context.Context, id string) (*pagescope.StoredScan, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+scanColumns+" FROM scans WHERE id = ?", id)
	scan, err := scanScan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagescope.Errorf(pagescope.ENOTFOUND, "scan not found")
	}
	if err != nil {
		return nil, err
	}
	return scan, nil
}

// FindScans retrieves scans matching the filter, newest first.
func (s *ScanService) FindScans(ctx context.Context, filter pagescope.ScanFilter) ([]*pagescope.StoredScan, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + scanColumns + " FROM scans WHERE 1=1")

	if filter.ActionID != nil {
		query.WriteString(" AND action_id = ?")
		args = append(args, string(*filter.ActionID))
	}
	if filter.PageURL != nil {
		query.WriteString(" AND page_url = ?")
		args = append(args, *filter.PageURL)
	}

	query.WriteString(" ORDER BY created_at DESC, id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*pagescope.StoredScan
	for rows.Next() {
		scan, err := scanScan(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}

	return scans, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanScan reads one scans row.
func scanScan(row rowScanner) (*pagescope.StoredScan, error) {
	var (
		scan      pagescope.StoredScan
		actionID  string
		data      string
		createdAt string
	)
	if err := row.Scan(&scan.ScanID, &actionID, &scan.ActionLabel, &scan.PageURL, &scan.PageTitle,
		&scan.ContentHash, &data, &createdAt); err != nil {
		return nil, err
	}
	scan.ActionID = pagescope.ActionID(actionID)

	var err error
	scan.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	scan.Data = &pagescope.Result{}
	if err := json.Unmarshal([]byte(data), scan.Data); err != nil {
		return nil, fmt.Errorf("failed to decode scan data: %w", err)
	}
	if scan.Data.Action == "" {
		scan.Data.Action = scan.ActionID
	}
	return &scan, nil
}
