package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"quiz/internal/pkg/quiz"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// SQLStore keeps records in a SQLite or MySQL database through database/sql.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// OpenSQLStore connects to the database and creates the quizzes table if needed.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	var sqlDriver string
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		sqlDriver = "sqlite3"
	case "mysql":
		sqlDriver = "mysql"
	default:
		return nil, errors.Wrapf(ErrUnsupportedDriver, "driver %q", driver)
	}
	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database failed")
	}
	if sqlDriver == "sqlite3" {
		// one connection keeps ":memory:" databases shared and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database failed")
	}
	s := &SQLStore{db: db, driver: sqlDriver}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	var stmt string
	switch s.driver {
	case "sqlite3":
		stmt = `CREATE TABLE IF NOT EXISTS quizzes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`
	case "mysql":
		stmt = `CREATE TABLE IF NOT EXISTS quizzes (
			id BIGINT NOT NULL AUTO_INCREMENT,
			question VARCHAR(1024) NOT NULL,
			answer VARCHAR(1024) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	}
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return errors.Wrapf(err, "migrate (%s) failed", s.driver)
	}
	return nil
}

func (s *SQLStore) FindAll(ctx context.Context) ([]quiz.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, question, answer FROM quizzes ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list quizzes failed")
	}
	defer rows.Close()

	var out []quiz.Record
	for rows.Next() {
		var r quiz.Record
		if err := rows.Scan(&r.ID, &r.Question, &r.Answer); err != nil {
			return nil, errors.Wrap(err, "scan quiz failed")
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "iterate quizzes failed")
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (quiz.Record, error) {
	r := quiz.Record{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT question, answer FROM quizzes WHERE id = ?`, id,
	).Scan(&r.Question, &r.Answer)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Record{}, &quiz.NotFoundError{ID: id}
	}
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "get quiz failed")
	}
	return r, nil
}

func (s *SQLStore) Create(ctx context.Context, fields quiz.Fields) (quiz.Record, error) {
	if err := quiz.Check(fields); err != nil {
		return quiz.Record{}, err
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (question, answer, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		fields.Question, fields.Answer, now, now,
	)
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "insert quiz failed")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "quiz id failed")
	}
	return quiz.Record{ID: id, Fields: fields}, nil
}

func (s *SQLStore) Update(ctx context.Context, record quiz.Record) (quiz.Record, error) {
	if err := quiz.Check(record.Fields); err != nil {
		return quiz.Record{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "begin tx failed")
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM quizzes WHERE id = ?`, record.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Record{}, &quiz.NotFoundError{ID: record.ID}
	}
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "lookup quiz failed")
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE quizzes SET question = ?, answer = ?, updated_at = ? WHERE id = ?`,
		record.Question, record.Answer, time.Now().UTC(), record.ID,
	); err != nil {
		return quiz.Record{}, errors.Wrap(err, "update quiz failed")
	}
	if err := tx.Commit(); err != nil {
		return quiz.Record{}, errors.Wrap(err, "commit tx failed")
	}
	return record, nil
}

func (s *SQLStore) Destroy(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id); err != nil {
		return errors.Wrap(err, "delete quiz failed")
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
