package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/stats"
)

var groupReportHeader = []string{"rank", "key", "name", "count", "average", "min", "max", "grade"}

type ExportService interface {
	// WriteGroupReport writes groups as CSV and returns the generated file
	// name, relative to the export directory.
	WriteGroupReport(report string, groups []stats.GroupStat) (string, error)
	GetFilePath(filename string) (string, error)
	DeleteFile(filename string) error
	EnsureExportDir() error
}

type exportService struct {
	exportPath string
}

func NewExportService(exportPath string) ExportService {
	return &exportService{
		exportPath: exportPath,
	}
}

func (s *exportService) EnsureExportDir() error {
	if err := os.MkdirAll(s.exportPath, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}

func (s *exportService) WriteGroupReport(report string, groups []stats.GroupStat) (string, error) {
	if err := s.EnsureExportDir(); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s_%s.csv", sanitize(report), uuid.New().String())
	filePath := filepath.Join(s.exportPath, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := writeGroupRows(dst, groups); err != nil {
		dst.Close()
		os.Remove(filePath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	log.Printf("💾 Exported %d %s rows to %s\n", len(groups), report, filename)
	return filename, nil
}

func writeGroupRows(dst io.Writer, groups []stats.GroupStat) error {
	w := csv.NewWriter(dst)
	if err := w.Write(groupReportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for i, g := range groups {
		rank := g.Rank
		if rank == 0 {
			rank = i + 1
		}
		if err := w.Write([]string{
			strconv.Itoa(rank),
			g.Key,
			g.Name,
			strconv.Itoa(g.Count),
			strconv.FormatFloat(g.Average, 'f', 2, 64),
			strconv.FormatFloat(g.Min, 'f', 2, 64),
			strconv.FormatFloat(g.Max, 'f', 2, 64),
			string(g.Grade),
		}); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

// GetFilePath resolves filename inside the export directory. Names that
// would escape it are rejected.
func (s *exportService) GetFilePath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", &apperrors.ValidationError{Field: "filename", Reason: "is not a valid export name"}
	}
	path := filepath.Join(s.exportPath, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", &apperrors.NotFoundError{Kind: "export", ID: filename}
		}
		return "", fmt.Errorf("failed to stat export: %w", err)
	}
	return path, nil
}

func (s *exportService) DeleteFile(filename string) error {
	path, err := s.GetFilePath(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
