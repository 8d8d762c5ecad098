package application

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/openkraft/devkit/internal/domain"
	"github.com/openkraft/devkit/internal/domain/lines"
)

// SliceService prints numbered windows of a text file and outlines markdown.
type SliceService struct {
	outliner domain.OutlineExtractor
	logger   *zap.Logger
}

func NewSliceService(outliner domain.OutlineExtractor, logger *zap.Logger) *SliceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SliceService{outliner: outliner, logger: logger}
}

// Slice reads path and returns one LineSlice per range, in the order given.
func (s *SliceService) Slice(path string, ranges []domain.LineRange) ([]domain.LineSlice, error) {
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	all := lines.Split(string(data))
	s.logger.Debug("file split", zap.String("path", path), zap.Int("lines", len(all)))
	return lines.SelectAll(all, ranges), nil
}

// Outline returns the markdown headings of path.
func (s *SliceService) Outline(path string) ([]domain.Heading, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.outliner.Headings(data), nil
}
