package store

import (
	"context"
	"time"

	"quiz/internal/pkg/quiz"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type quizRow struct {
	ID        int64  `gorm:"primaryKey"`
	Question  string `gorm:"not null"`
	Answer    string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (quizRow) TableName() string {
	return "quizzes"
}

func (r quizRow) record() quiz.Record {
	return quiz.Record{ID: r.ID, Fields: quiz.Fields{Question: r.Question, Answer: r.Answer}}
}

// GormStore keeps records in PostgreSQL through gorm.
type GormStore struct {
	db *gorm.DB
}

// OpenGormStore connects to PostgreSQL and migrates the quizzes table.
func OpenGormStore(ctx context.Context, dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to database failed")
	}
	return NewGormStore(ctx, db)
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(ctx context.Context, db *gorm.DB) (*GormStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&quizRow{}); err != nil {
		return nil, errors.Wrap(err, "migrate quizzes failed")
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]quiz.Record, error) {
	var rows []quizRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list quizzes failed")
	}
	out := make([]quiz.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out, nil
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (quiz.Record, error) {
	var row quizRow
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return quiz.Record{}, &quiz.NotFoundError{ID: id}
	}
	if err != nil {
		return quiz.Record{}, errors.Wrap(err, "get quiz failed")
	}
	return row.record(), nil
}

func (s *GormStore) Create(ctx context.Context, fields quiz.Fields) (quiz.Record, error) {
	if err := quiz.Check(fields); err != nil {
		return quiz.Record{}, err
	}
	row := quizRow{Question: fields.Question, Answer: fields.Answer}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return quiz.Record{}, errors.Wrap(err, "insert quiz failed")
	}
	return row.record(), nil
}

func (s *GormStore) Update(ctx context.Context, record quiz.Record) (quiz.Record, error) {
	if err := quiz.Check(record.Fields); err != nil {
		return quiz.Record{}, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row quizRow
		if err := tx.First(&row, record.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &quiz.NotFoundError{ID: record.ID}
			}
			return errors.Wrap(err, "lookup quiz failed")
		}
		row.Question = record.Question
		row.Answer = record.Answer
		return errors.Wrap(tx.Save(&row).Error, "update quiz failed")
	})
	if err != nil {
		return quiz.Record{}, err
	}
	return record, nil
}

func (s *GormStore) Destroy(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&quizRow{}, id).Error; err != nil {
		return errors.Wrap(err, "delete quiz failed")
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db failed")
	}
	return sqlDB.Close()
}
