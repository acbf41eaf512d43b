package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filestore-api/internal/application/ports"
	"filestore-api/internal/domain/file"
)

// 64 KiB copy buffer bounds memory regardless of file size.
const chunkSize = 1 << 16

// Local keeps content on the node's filesystem, sharded by the first
// two characters of the stored id.
type Local struct {
	logger *zap.Logger
	root   string
}

func NewLocal(logger *zap.Logger, root string) *Local {
	return &Local{logger: logger, root: root}
}

func (s *Local) Get(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	f, err := os.Open(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, file.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Save streams src into a temp file and renames it into place, so a
// crashed upload never leaves a partial object under the final path.
func (s *Local) Save(ctx context.Context, id uuid.UUID, src io.Reader) (int64, error) {
	target := s.path(id)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "upload-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	var size int64
	buf := make([]byte, chunkSize)
	for {
		if err = ctx.Err(); err != nil {
			tmp.Close()
			return 0, err
		}

		n, rErr := src.Read(buf)
		if n > 0 {
			if _, wErr := tmp.Write(buf[:n]); wErr != nil {
				tmp.Close()
				return 0, wErr
			}
			size += int64(n)
		}
		if rErr == io.EOF {
			break
		}
		if rErr != nil {
			tmp.Close()
			return 0, rErr
		}
	}

	if err = tmp.Close(); err != nil {
		return 0, err
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return 0, err
	}

	s.logger.Debug("stored content", zap.String("id", id.String()), zap.Int64("size", size))

	return size, nil
}

func (s *Local) Erase(ctx context.Context, id uuid.UUID) error {
	path := s.path(id)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return file.ErrNotFound
		}
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("erase %s: %w", id, err)
	}
	return nil
}

func (s *Local) path(id uuid.UUID) string {
	str := id.String()
	return filepath.Join(s.root, str[:2], str)
}

var _ ports.ByteStorage = (*Local)(nil)
