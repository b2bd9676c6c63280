package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rusenback/steammon/internal/model"
	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

// TimeRange represents different time window options
type TimeRange int

const (
	Range30Min TimeRange = iota
	Range1Hour
	Range6Hour
	Range1Day
	Range1Week
)

func (t TimeRange) String() string {
	switch t {
	case Range30Min:
		return "30min"
	case Range1Hour:
		return "1hour"
	case Range6Hour:
		return "6hours"
	case Range1Day:
		return "1day"
	case Range1Week:
		return "1week"
	default:
		return "unknown"
	}
}

// Duration returns the time duration for the range
func (t TimeRange) Duration() time.Duration {
	switch t {
	case Range30Min:
		return 30 * time.Minute
	case Range1Hour:
		return 1 * time.Hour
	case Range6Hour:
		return 6 * time.Hour
	case Range1Day:
		return 24 * time.Hour
	case Range1Week:
		return 7 * 24 * time.Hour
	default:
		return 30 * time.Minute
	}
}

// bucketSize is the aggregation step in seconds, 0 means raw rows
func (t TimeRange) bucketSize() int64 {
	switch t {
	case Range1Hour:
		return 30
	case Range6Hour:
		return 300
	case Range1Day:
		return 600
	case Range1Week:
		return 3600
	default:
		return 0
	}
}

// DataPoint represents a single rate reading in time
type DataPoint struct {
	Timestamp time.Time
	RateMbps  float64
}

// SampleEntry represents a poll result to be written
type SampleEntry struct {
	SessionID string
	Timestamp time.Time
	Status    string
	Item      string
	AppID     string
	Rate      sql.NullFloat64
}

// Options configures the history database
type Options struct {
	Path      string
	Root      string // steam root recorded with the session
	Retention time.Duration
	Logger    logrus.FieldLogger
}

// Storage keeps poll results in sqlite
type Storage struct {
	db        *sql.DB
	session   string
	retention time.Duration
	log       logrus.FieldLogger

	writeChan chan *SampleEntry
	closeChan chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// DefaultPath returns ~/.steammon/history.db
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".steammon", "history.db"), nil
}

// NewStorage opens (or creates) the database and starts the background writer
func NewStorage(opts Options) (*Storage, error) {
	if opts.Path == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		opts.Path = path
	}
	if opts.Retention <= 0 {
		opts.Retention = 7 * 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	session := uuid.NewString()
	if _, err := db.Exec(
		"INSERT INTO sessions (id, root, started_at) VALUES (?, ?, ?)",
		session, opts.Root, time.Now().Unix(),
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	storage := &Storage{
		db:        db,
		session:   session,
		retention: opts.Retention,
		log:       opts.Logger.WithField("db", opts.Path),
		writeChan: make(chan *SampleEntry, 1000),
		closeChan: make(chan struct{}),
	}

	storage.wg.Add(2)
	go storage.writer()
	go storage.cleanup()

	return storage, nil
}

// createTables creates the database schema
func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS rate_samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		status TEXT NOT NULL,
		item TEXT,
		app_id TEXT,
		rate_mbps REAL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_time
	ON rate_samples(timestamp);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		root TEXT,
		started_at INTEGER
	);
	`

	_, err := db.Exec(schema)
	return err
}

// Session returns the id rows of this process are written with
func (s *Storage) Session() string {
	return s.session
}

// Record queues a poll result
func (s *Storage) Record(sample model.Sample) {
	entry := &SampleEntry{
		SessionID: s.session,
		Timestamp: sample.Timestamp,
		Status:    sample.Status.Kind.String(),
		Item:      sample.Status.Item,
		AppID:     sample.Status.AppID,
	}
	if rate, ok := sample.Status.RateMbps(); ok {
		entry.Rate = sql.NullFloat64{Float64: rate, Valid: true}
	}
	s.Write(entry)
}

// Write queues an entry for writing
func (s *Storage) Write(entry *SampleEntry) {
	select {
	case s.writeChan <- entry:
	default:
		// Channel full, drop rather than block the poll loop
		s.log.Debug("history buffer full, sample dropped")
	}
}

// writer runs in background and batch writes to database
func (s *Storage) writer() {
	defer s.wg.Done()

	buffer := make([]*SampleEntry, 0, 100)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case entry := <-s.writeChan:
			buffer = append(buffer, entry)
			if len(buffer) >= 50 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-ticker.C:
			if len(buffer) > 0 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-s.closeChan:
			// Drain whatever was queued before Close
			for drained := false; !drained; {
				select {
				case entry := <-s.writeChan:
					buffer = append(buffer, entry)
				default:
					drained = true
				}
			}
			if len(buffer) > 0 {
				s.batchWrite(buffer)
			}
			return
		}
	}
}

// batchWrite writes a batch of entries to the database
func (s *Storage) batchWrite(entries []*SampleEntry) {
	tx, err := s.db.Begin()
	if err != nil {
		s.log.WithError(err).Warn("begin history batch")
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO rate_samples
		(session_id, timestamp, status, item, app_id, rate_mbps)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		s.log.WithError(err).Warn("prepare history insert")
		return
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err := stmt.Exec(
			entry.SessionID,
			entry.Timestamp.Unix(),
			entry.Status,
			entry.Item,
			entry.AppID,
			entry.Rate,
		)
		if err != nil {
			s.log.WithError(err).Debug("insert history row")
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		s.log.WithError(err).Warn("commit history batch")
	}
}

// Query retrieves rate readings for a time range. Polls without a rate
// reading are left out.
func (s *Storage) Query(timeRange TimeRange) ([]DataPoint, error) {
	cutoff := time.Now().Add(-timeRange.Duration()).Unix()

	bucketSize := timeRange.bucketSize()
	if bucketSize == 0 {
		// Full resolution (no aggregation)
		rows, err := s.db.Query(`
			SELECT timestamp, rate_mbps
			FROM rate_samples
			WHERE timestamp > ? AND rate_mbps IS NOT NULL
			ORDER BY timestamp ASC, id ASC
		`, cutoff)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		return s.scanRows(rows)
	}

	rows, err := s.db.Query(`
		SELECT
			(timestamp / ?) * ? as bucket,
			AVG(rate_mbps) as avg_rate
		FROM rate_samples
		WHERE timestamp > ? AND rate_mbps IS NOT NULL
		GROUP BY bucket
		ORDER BY bucket ASC
	`, bucketSize, bucketSize, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanRows(rows)
}

// scanRows scans database rows into DataPoints
func (s *Storage) scanRows(rows *sql.Rows) ([]DataPoint, error) {
	var points []DataPoint

	for rows.Next() {
		var timestamp int64
		var rate float64

		if err := rows.Scan(&timestamp, &rate); err != nil {
			continue
		}

		points = append(points, DataPoint{
			Timestamp: time.Unix(timestamp, 0),
			RateMbps:  rate,
		})
	}

	return points, rows.Err()
}

// cleanup removes old data periodically
func (s *Storage) cleanup() {
	defer s.wg.Done()

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-s.retention).Unix()
			s.batchDelete(cutoff)

		case <-s.closeChan:
			return
		}
	}
}

// batchDelete removes old records in batches to prevent long-running locks
func (s *Storage) batchDelete(cutoffTimestamp int64) int64 {
	const batchSize = 1000

	var total int64
	for {
		result, err := s.db.Exec(`
			DELETE FROM rate_samples WHERE id IN (
				SELECT id FROM rate_samples WHERE timestamp < ? LIMIT ?
			)`,
			cutoffTimestamp,
			batchSize,
		)
		if err != nil {
			s.log.WithError(err).Warn("delete old history")
			return total
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil || rowsAffected == 0 {
			return total
		}
		total += rowsAffected

		select {
		case <-s.closeChan:
			return total
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// Close flushes pending entries and closes the database
func (s *Storage) Close() error {
	s.closeOnce.Do(func() {
		close(s.closeChan)
	})
	s.wg.Wait()
	return s.db.Close()
}
