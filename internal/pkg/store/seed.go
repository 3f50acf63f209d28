package store

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"

	"quiz/internal/pkg/quiz"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Quizzes []quiz.Fields `yaml:"quizzes"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(r io.Reader) ([]quiz.Fields, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode seed failed")
	}
	return f.Quizzes, nil
}

// LoadSeed reads a YAML seed file from disk.
func LoadSeed(path string) ([]quiz.Fields, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open seed %s failed", path)
	}
	defer file.Close()
	return ParseSeed(file)
}

// DefaultSeed returns the built-in records.
func DefaultSeed() []quiz.Fields {
	fields, err := ParseSeed(bytes.NewReader(defaultSeed))
	if err != nil {
		panic(err)
	}
	return fields
}

// Import creates every record in order and returns how many were created.
func Import(ctx context.Context, st quiz.Store, fields []quiz.Fields) (int, error) {
	for i, f := range fields {
		if _, err := st.Create(ctx, f); err != nil {
			return i, errors.Wrapf(err, "import quiz #%d failed", i+1)
		}
	}
	return len(fields), nil
}

// SeedIfEmpty imports fields only when the store holds no records.
func SeedIfEmpty(ctx context.Context, st quiz.Store, fields []quiz.Fields) (int, error) {
	existing, err := st.FindAll(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "list quizzes failed")
	}
	if len(existing) > 0 {
		return 0, nil
	}
	n, err := Import(ctx, st, fields)
	if err != nil {
		return n, err
	}
	logger.WithField("count", n).Info("seeded empty quiz store")
	return n, nil
}
