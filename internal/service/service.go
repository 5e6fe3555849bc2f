package service

import (
	"fmt"
	"strings"
	"time"

	"hashline/internal/config"
	"hashline/internal/filesystem"
	"hashline/internal/hashline"
	"hashline/internal/lock"
)

// Service orchestrates file reads and edit batches: locking, I/O, limits
// and line-ending handling around the hashline engine.
type Service struct {
	fs           filesystem.Adapter
	locks        lock.Manager
	maxFileSize  int64
	maxLineCount int
	lockTimeout  time.Duration
}

// New creates a Service from its dependencies and validated configuration.
func New(fs filesystem.Adapter, locks lock.Manager, cfg *config.Config) (*Service, error) {
	if fs == nil {
		return nil, fmt.Errorf("filesystem adapter is required")
	}
	if locks == nil {
		return nil, fmt.Errorf("lock manager is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		fs:           fs,
		locks:        locks,
		maxFileSize:  cfg.MaxFileSizeBytes(),
		maxLineCount: cfg.MaxLineCount,
		lockTimeout:  time.Duration(cfg.LockTimeoutSec) * time.Second,
	}, nil
}

// ReadRequest defines parameters for an annotated read.
type ReadRequest struct {
	Path   string
	Offset int // 1-based first line to print; 0 means from the start
	Limit  int // max lines to print; 0 means no limit
}

// ReadResponse is the annotated read result.
type ReadResponse struct {
	Content    string // LINE:HASH|content per line
	TotalLines int
	StartLine  int
	Printed    int
}

// ReadFile reads a file and annotates each line in the requested window
// with its line number and fingerprint.
func (s *Service) ReadFile(req *ReadRequest) (*ReadResponse, error) {
	doc, err := s.loadDocument(req.Path)
	if err != nil {
		return nil, err
	}
	lines := doc.Lines

	start := req.Offset
	if start == 0 {
		start = 1
	}
	if start < 1 {
		return nil, fmt.Errorf("offset is 1-indexed (must be >= 1)")
	}
	if start > len(lines) {
		return nil, fmt.Errorf("offset %d out of range (file has %d lines)", start, len(lines))
	}

	max := req.Limit
	if max <= 0 {
		max = len(lines)
	}

	var b strings.Builder
	printed := 0
	for i := start - 1; i < len(lines) && printed < max; i++ {
		if printed > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d:%s|%s", i+1, hashline.Fingerprint(lines[i]), lines[i])
		printed++
	}

	return &ReadResponse{
		Content:    b.String(),
		TotalLines: len(lines),
		StartLine:  start,
		Printed:    printed,
	}, nil
}

// EditRequest defines an edit batch against one file.
type EditRequest struct {
	Path    string
	Edits   []hashline.Operation
	Preview bool
}

// EditResponse reports the outcome of an applied batch.
type EditResponse struct {
	Changed       bool
	OldTotalLines int
	NewTotalLines int
	Preview       string // populated when requested, before the write
}

// EditFile applies an edit batch to a file under an OS-level lock. The
// whole batch is atomic: any error leaves the file untouched. An empty
// batch succeeds without writing.
func (s *Service) EditFile(req *EditRequest) (*EditResponse, error) {
	l, err := s.locks.AcquireLock(req.Path, s.lockTimeout)
	if err != nil {
		return nil, fmt.Errorf("edit: %w", err)
	}
	defer s.locks.ReleaseLock(l)

	doc, err := s.loadDocument(req.Path)
	if err != nil {
		return nil, err
	}

	if len(req.Edits) == 0 {
		return &EditResponse{
			Changed:       false,
			OldTotalLines: len(doc.Lines),
			NewTotalLines: len(doc.Lines),
		}, nil
	}

	newLines, err := hashline.Apply(doc.Lines, req.Edits)
	if err != nil {
		return nil, err
	}

	resp := &EditResponse{
		Changed:       true,
		OldTotalLines: len(doc.Lines),
		NewTotalLines: len(newLines),
	}
	if req.Preview {
		resp.Preview = hashline.RenderPreview(doc.Lines, newLines)
	}

	if len(newLines) > s.maxLineCount {
		return nil, fmt.Errorf("edit would exceed the %d line limit", s.maxLineCount)
	}
	out := doc.Render(newLines)
	if int64(len(out)) > s.maxFileSize {
		return nil, fmt.Errorf("edit would exceed the file size limit")
	}

	if err := s.fs.WriteFileBytesAtomic(req.Path, []byte(out), 0644); err != nil {
		return nil, err
	}
	return resp, nil
}

// loadDocument reads, limit-checks and normalizes one file.
func (s *Service) loadDocument(path string) (*filesystem.Document, error) {
	size, err := s.fs.FileSize(path)
	if err != nil {
		return nil, err
	}
	if size > s.maxFileSize {
		return nil, fmt.Errorf("file too large: %s exceeds %d bytes", path, s.maxFileSize)
	}
	data, err := s.fs.ReadFileBytes(path)
	if err != nil {
		return nil, err
	}
	if !filesystem.IsValidUTF8(data) {
		return nil, fmt.Errorf("file is not valid UTF-8: %s", path)
	}
	doc := filesystem.ParseDocument(string(data))
	if len(doc.Lines) > s.maxLineCount {
		return nil, fmt.Errorf("file exceeds the %d line limit: %s", s.maxLineCount, path)
	}
	return doc, nil
}
