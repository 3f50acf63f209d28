// Package mocks holds testify mocks of the quiz interfaces.
package mocks

import (
	"context"

	"quiz/internal/pkg/quiz"

	"github.com/stretchr/testify/mock"
)

// Store is a mock of quiz.Store.
type Store struct {
	mock.Mock
}

var _ quiz.Store = (*Store)(nil)

func (_m *Store) FindAll(ctx context.Context) ([]quiz.Record, error) {
	ret := _m.Called(ctx)
	var r0 []quiz.Record
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]quiz.Record)
	}
	return r0, ret.Error(1)
}

func (_m *Store) FindByID(ctx context.Context, id int64) (quiz.Record, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(quiz.Record), ret.Error(1)
}

func (_m *Store) Create(ctx context.Context, fields quiz.Fields) (quiz.Record, error) {
	ret := _m.Called(ctx, fields)
	return ret.Get(0).(quiz.Record), ret.Error(1)
}

func (_m *Store) Update(ctx context.Context, record quiz.Record) (quiz.Record, error) {
	ret := _m.Called(ctx, record)
	return ret.Get(0).(quiz.Record), ret.Error(1)
}

func (_m *Store) Destroy(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *Store) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}
