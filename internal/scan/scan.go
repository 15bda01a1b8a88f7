// Package scan walks the two solution collections on disk and produces the
// raw records consumed by the matcher.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/a2zdsa/atlas/internal/atlas"
)

// UnknownSection is the section key of primary files found at the root.
const UnknownSection = "Unknown"

// Scanner locates solution files under the primary and secondary roots.
type Scanner struct {
	PrimaryRoot   string
	SecondaryRoot string
	PrimaryExt    string
	SecondaryExt  string
}

// Result holds the records of both collections in lexical path order.
type Result struct {
	Primary   []atlas.RawRecord
	Secondary []atlas.SecondaryRecord
}

var secondaryOrdinal = regexp.MustCompile(`^\d+\.`)

// Scan walks both roots concurrently. An empty root yields no records; a
// root that does not exist is an error.
func (s Scanner) Scan(ctx context.Context) (*Result, error) {
	var result Result
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.scanPrimary(gctx)
		if err != nil {
			return fmt.Errorf("failed to scan primary collection: %w", err)
		}
		result.Primary = records
		return nil
	})
	g.Go(func() error {
		records, err := s.scanSecondary(gctx)
		if err != nil {
			return fmt.Errorf("failed to scan secondary collection: %w", err)
		}
		result.Secondary = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s Scanner) scanPrimary(ctx context.Context) ([]atlas.RawRecord, error) {
	var records []atlas.RawRecord
	err := walk(ctx, s.PrimaryRoot, extOrDefault(s.PrimaryExt, ".py"), func(path string, rel []string) error {
		name := rel[len(rel)-1]
		section := UnknownSection
		if len(rel) > 1 {
			section = rel[0]
		}
		subsection := ""
		if len(rel) > 2 {
			subsection = rel[1]
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		records = append(records, atlas.RawRecord{
			Path:       path,
			SectionKey: section,
			Subsection: subsection,
			FileName:   name,
			RawName:    stem,
			Title:      titleCase(strings.NewReplacer("-", " ", "_", " ").Replace(stem)),
		})
		return nil
	})
	return records, err
}

func (s Scanner) scanSecondary(ctx context.Context) ([]atlas.SecondaryRecord, error) {
	var records []atlas.SecondaryRecord
	err := walk(ctx, s.SecondaryRoot, extOrDefault(s.SecondaryExt, ".cpp"), func(path string, rel []string) error {
		name := rel[len(rel)-1]
		var section, subsection string
		if len(rel) >= 3 {
			section = rel[len(rel)-3]
		}
		if len(rel) >= 2 {
			subsection = rel[len(rel)-2]
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		stem = secondaryOrdinal.ReplaceAllString(stem, "")

		rec := atlas.SecondaryRecord{RawRecord: atlas.RawRecord{
			Path:       path,
			SectionKey: section,
			Subsection: subsection,
			FileName:   name,
			RawName:    stem,
			Title:      titleCase(strings.ReplaceAll(stem, "_", " ")),
		}}
		if contents, err := os.ReadFile(path); err == nil {
			rec.Metadata = ExtractMetadata(string(contents))
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

// walk calls fn for every regular file under root with the given extension.
// rel holds the slash-separated path components below root. Hidden
// directories are skipped.
func walk(ctx context.Context, root, ext string, fn func(path string, rel []string) error) error {
	if root == "" {
		return nil
	}
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(d.Name()), ext) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(path, strings.Split(filepath.ToSlash(relPath), "/"))
	})
}

func extOrDefault(ext, fallback string) string {
	if ext == "" {
		return fallback
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

// IsNotExist reports whether err means a collection root is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
