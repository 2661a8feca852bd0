package content

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"maple-blog/internal/domain"
)

var (
	ErrNoFrontmatter = errors.New("missing frontmatter")
	ErrNoTitle       = errors.New("frontmatter has no title")

	fence = []byte("---")

	dateLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"Jan 02 2006",
		"Jan 2 2006",
		"January 2, 2006",
	}
)

type frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PubDate     string   `yaml:"pubDate"`
	Tags        []string `yaml:"tags"`
	Categories  []string `yaml:"categories"`
	Draft       bool     `yaml:"draft"`
	Slug        string   `yaml:"slug"`
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// splitFrontmatter returns the YAML block between the leading "---" fences and
// the remaining body.
func splitFrontmatter(data []byte) ([]byte, string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, fence) {
		return nil, "", ErrNoFrontmatter
	}

	rest := data[len(fence):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return nil, "", ErrNoFrontmatter
	}
	rest = rest[nl+1:]

	var head []byte
	for {
		line, tail, found := bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			return head, string(tail), nil
		}
		head = append(head, line...)
		head = append(head, '\n')
		if !found {
			return nil, "", ErrNoFrontmatter
		}
		rest = tail
	}
}

// slugFromPath mirrors the content collection convention: extension dropped,
// trailing "index" segment collapsed into its directory.
func slugFromPath(p string) string {
	p = strings.TrimSuffix(p, path.Ext(p))
	p = strings.TrimSuffix(p, "/index")
	p = strings.ToLower(p)
	return strings.Join(strings.Fields(p), "-")
}

func parsePost(f File) (domain.Post, error) {
	head, body, err := splitFrontmatter(f.Data)
	if err != nil {
		return domain.Post{}, fmt.Errorf("%s: %w", f.Path, err)
	}

	var fm frontmatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return domain.Post{}, fmt.Errorf("%s: parse frontmatter: %w", f.Path, err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return domain.Post{}, fmt.Errorf("%s: %w", f.Path, ErrNoTitle)
	}

	pubDate, err := parseDate(fm.PubDate)
	if err != nil {
		return domain.Post{}, fmt.Errorf("%s: pubDate: %w", f.Path, err)
	}

	slug := fm.Slug
	if slug == "" {
		slug = slugFromPath(f.Path)
	}

	return domain.Post{
		Slug:        slug,
		Title:       fm.Title,
		Description: fm.Description,
		PubDate:     pubDate,
		Tags:        fm.Tags,
		Categories:  fm.Categories,
		Draft:       fm.Draft,
		Body:        body,
	}, nil
}
