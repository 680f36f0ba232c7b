// filepath: internal/jobs/store.go
package jobs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pressly/goose/v3"
	"github.com/oklog/ulid/v2"

	// Pure-Go sqlite driver, registered under "sqlite".
	_ "modernc.org/sqlite"

	"mediaconform/internal/canvas"
	"mediaconform/internal/db/migrations"
	"mediaconform/internal/geometry"
	"mediaconform/internal/housekeeping"
)

// Store is the job ledger: a SQLite-backed table of conform operations plus
// an in-memory memoization cache for repeated identical canvas requests.
type Store struct {
	db      *sql.DB
	builder squirrel.StatementBuilderType
	cache   *gocache.Cache
}

// Open opens (and does not migrate) the ledger database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open job ledger: %w", err)
	}
	return &Store{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		cache:   gocache.New(10*time.Minute, 20*time.Minute),
	}, nil
}

// Migrate brings the ledger schema up to the latest embedded version.
func (s *Store) Migrate() error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	return goose.Up(s.db, ".")
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// NewJobID returns a sortable, time-ordered job identifier.
func NewJobID() string { return ulid.Make().String() }

// CreateJob inserts a new pending job row.
func (s *Store) CreateJob(j Job) error {
	sql, args, err := s.builder.Insert("jobs").
		Columns("id", "status", "created_at", "feed", "operation", "input_width", "input_height", "output_bytes").
		Values(j.ID, string(StatusPending), j.CreatedAt, j.Feed.String(), j.Operation.String(), j.Input.Width, j.Input.Height, 0).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert job: %w", err)
	}
	_, err = s.db.Exec(sql, args...)
	return err
}

// CompleteJob records a successful conform outcome.
func (s *Store) CompleteJob(id string, result canvas.Result, src, dst geometry.Rectangle, outputPath string, outputBytes int64, finishedAt time.Time) error {
	sql, args, err := s.builder.Update("jobs").
		Set("status", string(StatusCompleted)).
		Set("finished_at", finishedAt).
		Set("canvas_width", result.Canvas.Width).
		Set("canvas_height", result.Canvas.Height).
		Set("src_x", src.X).Set("src_y", src.Y).Set("src_width", src.Width).Set("src_height", src.Height).
		Set("dst_x", dst.X).Set("dst_y", dst.Y).Set("dst_width", dst.Width).Set("dst_height", dst.Height).
		Set("output_path", outputPath).
		Set("output_bytes", outputBytes).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build complete job: %w", err)
	}
	_, err = s.db.Exec(sql, args...)
	return err
}

// FailJob records a failed conform outcome.
func (s *Store) FailJob(id string, cause error, finishedAt time.Time) error {
	sql, args, err := s.builder.Update("jobs").
		Set("status", string(StatusFailed)).
		Set("finished_at", finishedAt).
		Set("error", cause.Error()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build fail job: %w", err)
	}
	_, err = s.db.Exec(sql, args...)
	return err
}

// GetJob fetches a single job by id.
func (s *Store) GetJob(id string) (*Job, error) {
	sqlStr, args, err := s.builder.Select(
		"id", "status", "created_at", "finished_at", "feed", "operation",
		"input_width", "input_height", "canvas_width", "canvas_height",
		"src_x", "src_y", "src_width", "src_height",
		"dst_x", "dst_y", "dst_width", "dst_height",
		"output_path", "output_bytes", "error",
	).From("jobs").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get job: %w", err)
	}

	row := s.db.QueryRow(sqlStr, args...)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return j, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		j                                    Job
		status, feed, op                     string
		finishedAt                           sql.NullTime
		canvasW, canvasH                     sql.NullInt64
		srcX, srcY, srcW, srcH               sql.NullInt64
		dstX, dstY, dstW, dstH               sql.NullInt64
		outputPath, jobErr                   sql.NullString
	)
	if err := row.Scan(
		&j.ID, &status, &j.CreatedAt, &finishedAt, &feed, &op,
		&j.Input.Width, &j.Input.Height, &canvasW, &canvasH,
		&srcX, &srcY, &srcW, &srcH,
		&dstX, &dstY, &dstW, &dstH,
		&outputPath, &j.OutputBytes, &jobErr,
	); err != nil {
		return nil, err
	}

	j.Status = Status(status)
	if feed == canvas.Story.String() {
		j.Feed = canvas.Story
	}
	if op == canvas.Expand.String() {
		j.Operation = canvas.Expand
	}
	if finishedAt.Valid {
		j.FinishedAt = finishedAt.Time
	}
	j.Canvas = geometry.NewDimensions(int(canvasW.Int64), int(canvasH.Int64))
	j.Src = geometry.NewRectangle(int(srcX.Int64), int(srcY.Int64), int(srcW.Int64), int(srcH.Int64))
	j.Dst = geometry.NewRectangle(int(dstX.Int64), int(dstY.Int64), int(dstW.Int64), int(dstH.Int64))
	j.OutputPath = outputPath.String
	j.Error = jobErr.String
	return &j, nil
}

// CachedCalculate memoizes canvas.Calculate results by an arbitrary caller-
// supplied key (typically a hash of the input dims + resolved profile), the
// way sqlite.go wires an in-process cache alongside the repository struct.
func (s *Store) CachedCalculate(key string, compute func() (canvas.Result, error)) (canvas.Result, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.(canvas.Result), nil
	}
	result, err := compute()
	if err != nil {
		return canvas.Result{}, err
	}
	s.cache.Set(key, result, gocache.DefaultExpiration)
	return result, nil
}

// --- housekeeping.Ledger ---

var _ housekeeping.Ledger = (*Store)(nil)

func (s *Store) FinishedBefore(cutoff time.Time) ([]housekeeping.JobRecord, error) {
	return s.queryFinished(squirrel.And{
		squirrel.NotEq{"status": string(StatusPending)},
		squirrel.Lt{"finished_at": cutoff},
	}, 0, 0)
}

func (s *Store) OldestFinished(limit, offset int) ([]housekeeping.JobRecord, error) {
	return s.queryFinished(squirrel.NotEq{"status": string(StatusPending)}, limit, offset)
}

func (s *Store) queryFinished(where squirrel.Sqlizer, limit, offset int) ([]housekeeping.JobRecord, error) {
	qb := s.builder.Select("id", "status", "created_at", "output_path", "output_bytes").
		From("jobs").Where(where).OrderBy("finished_at ASC")
	if limit > 0 {
		qb = qb.Limit(uint64(limit)).Offset(uint64(offset))
	}
	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build finished-jobs query: %w", err)
	}

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []housekeeping.JobRecord
	for rows.Next() {
		var rec housekeeping.JobRecord
		var status string
		var outputPath sql.NullString
		if err := rows.Scan(&rec.ID, &status, &rec.CreatedAt, &outputPath, &rec.OutputBytes); err != nil {
			return nil, err
		}
		rec.Status = status
		rec.OutputPath = outputPath.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) TotalOutputBytes() (int64, error) {
	sqlStr, args, err := s.builder.Select("COALESCE(SUM(output_bytes), 0)").From("jobs").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build total output bytes query: %w", err)
	}
	var total int64
	if err := s.db.QueryRow(sqlStr, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) DeleteJob(id string) error {
	sqlStr, args, err := s.builder.Delete("jobs").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete job: %w", err)
	}
	_, err = s.db.Exec(sqlStr, args...)
	return err
}

func (s *Store) LastHousekeepingRun() (time.Time, error) {
	sqlStr, args, err := s.builder.Select("last_run_at").From("housekeeping_meta").Where(squirrel.Eq{"id": 1}).ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("build last run query: %w", err)
	}
	var last sql.NullTime
	if err := s.db.QueryRow(sqlStr, args...).Scan(&last); err != nil {
		return time.Time{}, err
	}
	if !last.Valid {
		return time.Time{}, nil
	}
	return last.Time, nil
}

func (s *Store) SetLastHousekeepingRun(t time.Time) error {
	sqlStr, args, err := s.builder.Update("housekeeping_meta").Set("last_run_at", t).Where(squirrel.Eq{"id": 1}).ToSql()
	if err != nil {
		return fmt.Errorf("build set last run: %w", err)
	}
	_, err = s.db.Exec(sqlStr, args...)
	return err
}
