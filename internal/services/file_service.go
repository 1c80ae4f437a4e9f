package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fileServiceImpl struct {
	logger   zerolog.Logger
	dir      string
	maxBytes int64
}

func NewFileService(
	logger zerolog.Logger,
	dir string,
	maxSizeMB int64,
) FileService {
	return &fileServiceImpl{
		logger:   logger,
		dir:      dir,
		maxBytes: maxSizeMB << 20,
	}
}

func (s *fileServiceImpl) Save(ctx context.Context, originalName string, size int64, src io.Reader) (string, error) {
	if size > s.maxBytes {
		s.logger.Warn().
			Int64("size", size).
			Msg("uploaded file too large")
		return "", ErrFileTooLarge
	}

	err := os.MkdirAll(s.dir, 0o755)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("dir", s.dir).
			Msg("failed to create uploads dir")
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("name", name).
			Msg("failed to create file")
		return "", err
	}
	defer dst.Close()

	// Guard against a lying Content-Length.
	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("name", name).
			Msg("failed to write file")
		return "", err
	}
	if written > s.maxBytes {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", ErrFileTooLarge
	}

	s.logger.Info().
		Str("name", name).
		Int64("size", written).
		Msg("saved uploaded file")
	return name, nil
}

func (s *fileServiceImpl) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
