// Package store reads candidate sources and client record lists from YAML
// (or JSON) files and writes created nutrition profiles back to disk.
package store

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk/pkg/authority"
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
	"github.com/agentstation/dietdesk/pkg/records"
)

// Store is a directory-backed data source and profile sink.
type Store struct {
	dataDir   string
	outputDir string
	logger    *zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// New creates a Store.
func New(opts ...Option) *Store {
	o := defaults()
	for _, opt := range opts {
		opt(o)
	}
	return &Store{
		dataDir:   o.dataDir,
		outputDir: o.outputDir,
		logger:    o.logger,
		now:       o.now,
		newID:     o.newID,
	}
}

// DataDir returns the directory relative paths are resolved against.
func (s *Store) DataDir() string { return s.dataDir }

// OutputDir returns the directory created profiles are written to.
func (s *Store) OutputDir() string { return s.outputDir }

// resolve joins relative paths to the data directory.
func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.dataDir, path)
}

func (s *Store) read(path string) ([]byte, string, error) {
	full := s.resolve(path)
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, full, &errors.NotFoundError{Resource: "file", ID: full}
		}
		return nil, full, errors.WrapIO("read", full, err)
	}
	return data, full, nil
}

// LoadSource reads a candidate source, keeping the file's key order.
// An empty path means no source and returns nil without error.
func (s *Store) LoadSource(path string) (*fields.Source, error) {
	if path == "" {
		return nil, nil
	}
	data, full, err := s.read(path)
	if err != nil {
		return nil, err
	}
	var src fields.Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, errors.WrapParse("yaml", full, err)
	}

	s.logger.Debug().
		Str("path", full).
		Int("keys", src.Len()).
		Int("eligible", len(src.Eligible())).
		Msg("Loaded candidate source")
	return &src, nil
}

// LoadAuthorities reads field authority rules. An empty path returns the defaults.
func (s *Store) LoadAuthorities(path string) (authority.Authority, error) {
	if path == "" {
		return authority.Default(), nil
	}
	data, full, err := s.read(path)
	if err != nil {
		return nil, err
	}
	var rules []authority.Field
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, errors.WrapParse("yaml", full, err)
	}
	for i, r := range rules {
		if _, ok := fields.ParseOrigin(string(r.Source)); !ok || !r.Source.IsCandidate() {
			return nil, errors.NewParseError("yaml", full, "rule "+r.Path+": source must be existing or algorithmic", nil)
		}
		if strings.TrimSpace(r.Path) == "" {
			return nil, errors.NewParseError("yaml", full, "rule has an empty path", nil)
		}
		rules[i].Path = strings.TrimSpace(r.Path)
	}
	return authority.New(rules...), nil
}

// LoadSurveys reads a survey list and returns it newest first.
func (s *Store) LoadSurveys(path string) ([]records.Survey, error) {
	data, full, err := s.read(path)
	if err != nil {
		return nil, err
	}
	var docs []surveyDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, errors.WrapParse("yaml", full, err)
	}

	surveys := make([]records.Survey, 0, len(docs))
	for i, d := range docs {
		survey, err := d.survey()
		if err != nil {
			return nil, errors.NewParseError("yaml", full, "survey "+itemID(d.ID, i)+": "+err.Error(), err)
		}
		surveys = append(surveys, survey)
	}
	records.SortSurveys(surveys)

	s.logger.Debug().Str("path", full).Int("count", len(surveys)).Msg("Loaded surveys")
	return surveys, nil
}

// LoadBloodReports reads a blood report list and returns it newest first.
// Result values are coerced like profile fields: blank is no value.
func (s *Store) LoadBloodReports(path string) ([]records.BloodReport, error) {
	data, full, err := s.read(path)
	if err != nil {
		return nil, err
	}
	var docs []bloodDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, errors.WrapParse("yaml", full, err)
	}

	reports := make([]records.BloodReport, 0, len(docs))
	for i, d := range docs {
		report, err := d.report()
		if err != nil {
			return nil, errors.NewParseError("yaml", full, "blood report "+itemID(d.ID, i)+": "+err.Error(), err)
		}
		reports = append(reports, report)
	}
	records.SortBloodReports(reports)

	s.logger.Debug().Str("path", full).Int("count", len(reports)).Msg("Loaded blood reports")
	return reports, nil
}
