package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/viant/afs"
	afsfile "github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/option"
	afsurl "github.com/viant/afs/url"
	"go.uber.org/zap"
)

// ErrNotFound marks an entry whose file does not exist.
var ErrNotFound = errors.New("file not found")

// Storage is the subset of afs.Service used by the patcher.
type Storage interface {
	Exists(ctx context.Context, URL string, options ...storage.Option) (bool, error)
	DownloadWithURL(ctx context.Context, URL string, options ...storage.Option) ([]byte, error)
	NewWriter(ctx context.Context, URL string, mode os.FileMode, options ...storage.Option) (io.WriteCloser, error)
}

type Service struct {
	fs        Storage
	baseURL   string
	dryRun    bool
	diffBytes int
	useText   bool
	spec      Spec
	out       io.Writer
	logger    *zap.Logger
}

func NewService(cfg *Config) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	diffBytes := cfg.DiffBytes
	if diffBytes <= 0 {
		diffBytes = defaultDiffBytes
	}
	logger := zap.NewNop()
	if cfg.Verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	return &Service{
		fs:        afs.New(),
		baseURL:   cfg.BaseURL,
		dryRun:    cfg.DryRun,
		diffBytes: diffBytes,
		useText:   !cfg.UseData,
		spec:      DefaultSpec,
		logger:    logger,
	}
}

// SetStorage overrides the file system (used in tests).
func (s *Service) SetStorage(fs Storage) { s.fs = fs }

// SetSpec replaces the patch table used by RunTool.
func (s *Service) SetSpec(spec Spec) { s.spec = spec }

// SetOutput enables console status lines.
func (s *Service) SetOutput(w io.Writer) { s.out = w }

func (s *Service) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

func (s *Service) Storage() Storage { return s.fs }

func (s *Service) UseTextField() bool { return s.useText }

// RunTool runs the configured table, optionally restricted to in.Paths.
func (s *Service) RunTool(ctx context.Context, in *RunInput) (*Report, error) {
	if in == nil {
		in = &RunInput{}
	}
	spec := s.spec.Filter(in.Paths)
	if len(in.Paths) > 0 && len(spec) == 0 {
		return nil, errors.New("none of the requested paths are in the patch table")
	}
	return s.Run(ctx, spec, in.DryRun || s.dryRun), nil
}

// Run processes every entry in order. Per-entry failures are recorded on the
// report and never stop the run.
func (s *Service) Run(ctx context.Context, spec Spec, dryRun bool) *Report {
	report := &Report{RunID: uuid.New().String(), DryRun: dryRun}
	for _, entry := range spec {
		res := s.patchEntry(ctx, entry, dryRun)
		report.add(res)
		s.emit(res, dryRun)
	}
	if s.out != nil {
		fmt.Fprint(s.out, "\n✨ Done!\n")
	}
	return report
}

func (s *Service) patchEntry(ctx context.Context, entry Entry, dryRun bool) Result {
	res := Result{Path: entry.Path}
	URL, err := s.resolve(entry.Path)
	if err != nil {
		return failed(res, err)
	}
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return failed(res, err)
	}
	if !exists {
		res.Status = StatusNotFound
		res.Error = ErrNotFound.Error()
		return res
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return failed(res, err)
	}
	if !utf8.Valid(data) {
		return failed(res, fmt.Errorf("content is not valid UTF-8"))
	}
	original := string(data)
	patched, matches, err := applyRules(original, entry.Rules)
	if err != nil {
		return failed(res, err)
	}
	res.Matches = matches
	if patched == original {
		res.Status = StatusUnchanged
		return res
	}
	s.logger.Debug("entry patched",
		zap.String("path", entry.Path),
		zap.String("url", URL),
		zap.Int("matches", matches),
		zap.Bool("dryRun", dryRun))
	if dryRun {
		res.Status = StatusFixed
		res.Diff = previewDiff(original, patched, s.diffBytes)
		return res
	}
	if err := s.overwrite(ctx, URL, patched); err != nil {
		return failed(res, fmt.Errorf("write: %w", err))
	}
	res.Status = StatusFixed
	return res
}

// overwrite truncates and writes through the existing file so its mode,
// inode and symlink target are kept.
func (s *Service) overwrite(ctx context.Context, URL, content string) error {
	writer, err := s.fs.NewWriter(ctx, URL, afsfile.DefaultFileOsMode, option.OsFlag(os.O_TRUNC), option.NewEmpty(true))
	if err != nil {
		return err
	}
	_, err = io.WriteString(writer, content)
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	return err
}

func failed(res Result, err error) Result {
	res.Status = StatusError
	res.Error = err.Error()
	return res
}

// resolve maps an entry path onto the configured base URL.
func (s *Service) resolve(path string) (string, error) {
	if strings.Contains(path, "://") || filepath.IsAbs(path) {
		return path, nil
	}
	base := s.baseURL
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		base = "file://" + filepath.ToSlash(wd)
	}
	return afsurl.Join(base, filepath.ToSlash(path)), nil
}

func (s *Service) emit(res Result, dryRun bool) {
	if s.out == nil {
		return
	}
	fmt.Fprintln(s.out, StatusLine(res, dryRun))
	if res.Diff != "" {
		fmt.Fprint(s.out, res.Diff)
	}
}

// StatusLine formats the console line for a result.
func StatusLine(res Result, dryRun bool) string {
	switch res.Status {
	case StatusNotFound:
		return "❌ File not found: " + res.Path
	case StatusFixed:
		if dryRun {
			return "✅ Would fix: " + res.Path
		}
		return "✅ Fixed: " + res.Path
	case StatusUnchanged:
		return "⚠️  No changes needed: " + res.Path
	default:
		return fmt.Sprintf("❌ Error processing %s: %s", res.Path, res.Error)
	}
}
