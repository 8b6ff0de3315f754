package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
	"github.com/agentstation/dietdesk/pkg/reconcile"
)

const maxSlugLength = 48

// Profile is the on-disk form of a created nutrition profile.
type Profile struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	CreatedAt time.Time     `yaml:"created_at"`
	Values    yaml.MapSlice `yaml:"values"`
}

// Created describes a profile written by Create.
type Created struct {
	ID   string
	Path string
}

// Create writes a payload as a new profile file under the output directory.
// It matches reconcile.CreateFunc. Existing files are never overwritten.
func (s *Store) Create(ctx context.Context, payload reconcile.Payload) error {
	_, err := s.CreateProfile(ctx, payload)
	return err
}

// CreateProfile is Create that also reports what was written.
func (s *Store) CreateProfile(ctx context.Context, payload reconcile.Payload) (*Created, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, errors.ErrEmptyName
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLength {
		return nil, errors.ErrNameTooLong
	}

	profile := Profile{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: s.now().UTC(),
		Values:    sortedValues(payload.Values),
	}
	data, err := yaml.MarshalWithOptions(profile, yaml.Indent(2))
	if err != nil {
		return nil, errors.WrapResource("encode", "profile", name, err)
	}

	if err := os.MkdirAll(s.outputDir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", s.outputDir, err)
	}

	base := Slug(name) + "-" + profile.CreatedAt.Format(constants.TimeFormatFilename)
	path := filepath.Join(s.outputDir, base+".yaml")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePermissions)
	if os.IsExist(err) {
		path = filepath.Join(s.outputDir, base+"-"+shortID(profile.ID)+".yaml")
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePermissions)
	}
	if err != nil {
		return nil, errors.WrapIO("create", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return nil, errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, errors.WrapIO("write", path, err)
	}

	s.logger.Info().
		Str("profile_id", profile.ID).
		Str("name", name).
		Str("path", path).
		Int("field_count", len(profile.Values)).
		Msg("Created nutrition profile")
	return &Created{ID: profile.ID, Path: path}, nil
}

// LoadProfile reads a profile written by Create back as a candidate source,
// so a saved profile can be offered as the existing side of the next merge.
// The source carries id and name first, then the values in file order.
// Blank values are omitted.
func (s *Store) LoadProfile(path string) (*fields.Source, error) {
	data, full, err := s.read(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := yaml.UnmarshalWithOptions(data, &p, yaml.UseOrderedMap()); err != nil {
		return nil, errors.WrapParse("yaml", full, err)
	}

	entries := []fields.Entry{{Name: "id", Value: p.ID}, {Name: "name", Value: p.Name}}
	for _, item := range p.Values {
		key, ok := item.Key.(string)
		if !ok || item.Value == nil {
			continue
		}
		entries = append(entries, fields.Entry{Name: fields.Name(key), Value: item.Value})
	}
	return fields.NewSource(entries...), nil
}

// ListProfiles returns the profile files in the output directory sorted by file name.
func (s *Store) ListProfiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.outputDir, "*.yaml"))
	if err != nil {
		return nil, errors.WrapIO("list", s.outputDir, err)
	}
	slices.Sort(matches)
	return matches, nil
}

// sortedValues orders payload values by field name for stable files.
func sortedValues(values map[fields.Name]*float64) yaml.MapSlice {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, string(name))
	}
	slices.Sort(names)

	ms := make(yaml.MapSlice, 0, len(names))
	for _, name := range names {
		var v any
		if p := values[fields.Name(name)]; p != nil {
			v = *p
		}
		ms = append(ms, yaml.MapItem{Key: name, Value: v})
	}
	return ms
}

// Slug turns a profile name into a file-name-safe lowercase token.
func Slug(name string) string {
	lower := cases.Lower(language.Und).String(strings.TrimSpace(name))

	var b strings.Builder
	dash := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(truncateRunes(slug, maxSlugLength), "-")
	}
	if slug == "" {
		return "profile"
	}
	return slug
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
