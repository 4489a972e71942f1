package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go-feedback-app/internal/cache"
	"go-feedback-app/internal/data"
	"go-feedback-app/internal/storage"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const changelogListKey = "changelog:list"
const changelogListTTL = time.Minute

// ImageUpload is an incoming changelog image.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// ChangelogService provides business logic for changelog entries. Entry
// bodies are written as markdown, rendered to HTML and sanitized before
// persistence; the stored description is treated as opaque safe text from
// then on.
type ChangelogService struct {
	repo      ChangelogRepository
	store     storage.Store
	cache     *cache.Cache
	sanitizer *bluemonday.Policy
	markdown  goldmark.Markdown
}

// NewChangelogService creates a new ChangelogService.
func NewChangelogService(repo ChangelogRepository, store storage.Store, c *cache.Cache) *ChangelogService {
	// UGCPolicy allows basic formatting like links, lists and bold while
	// stripping out dangerous HTML.
	return &ChangelogService{
		repo:      repo,
		store:     store,
		cache:     c,
		sanitizer: bluemonday.UGCPolicy(),
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// render converts markdown source to sanitized HTML.
func (s *ChangelogService) render(source string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render changelog body: %w", err)
	}
	return s.sanitizer.Sanitize(buf.String()), nil
}

// CreateChangelog publishes a new entry, storing the image (if any) through
// the blob store first.
func (s *ChangelogService) CreateChangelog(ctx context.Context, authorID int64, title, source string, image *ImageUpload) (*data.Changelog, error) {
	description, err := s.render(source)
	if err != nil {
		return nil, err
	}

	var imagePath *string
	if image != nil {
		path, err := s.store.Put(ctx, image.Filename, image.Reader)
		if err != nil {
			return nil, err
		}
		imagePath = &path
	}

	changelog := &data.Changelog{
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		Source:      source,
		Image:       imagePath,
	}
	if err := s.repo.CreateChangelog(ctx, changelog); err != nil {
		return nil, err
	}
	s.invalidateList()
	return changelog, nil
}

// UpdateChangelog replaces an entry's title and body and adjusts the image:
// removeImage clears the current one, a new upload replaces it. The slug
// never changes.
func (s *ChangelogService) UpdateChangelog(ctx context.Context, id int64, title, source string, removeImage bool, image *ImageUpload) (*data.Changelog, error) {
	changelog, err := s.repo.GetChangelogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	description, err := s.render(source)
	if err != nil {
		return nil, err
	}

	if removeImage && changelog.Image != nil {
		if err := s.store.Delete(ctx, *changelog.Image); err != nil {
			return nil, err
		}
		changelog.Image = nil
	}
	if image != nil {
		if changelog.Image != nil {
			if err := s.store.Delete(ctx, *changelog.Image); err != nil {
				return nil, err
			}
		}
		path, err := s.store.Put(ctx, image.Filename, image.Reader)
		if err != nil {
			return nil, err
		}
		changelog.Image = &path
	}

	changelog.Title = title
	changelog.Description = description
	changelog.Source = source
	if err := s.repo.UpdateChangelog(ctx, changelog); err != nil {
		return nil, err
	}
	s.invalidateList()
	return changelog, nil
}

// DeleteChangelog removes an entry and its stored image.
func (s *ChangelogService) DeleteChangelog(ctx context.Context, id int64) error {
	changelog, err := s.repo.GetChangelogByID(ctx, id)
	if err != nil {
		return err
	}
	if changelog.Image != nil {
		if err := s.store.Delete(ctx, *changelog.Image); err != nil {
			return err
		}
	}
	if err := s.repo.DeleteChangelog(ctx, id); err != nil {
		return err
	}
	s.invalidateList()
	return nil
}

// GetChangelogBySlug retrieves a single entry by slug.
func (s *ChangelogService) GetChangelogBySlug(ctx context.Context, slug string) (*data.Changelog, error) {
	return s.repo.GetChangelogBySlug(ctx, slug)
}

// GetChangelogByID retrieves a single entry by id, for the admin edit form.
func (s *ChangelogService) GetChangelogByID(ctx context.Context, id int64) (*data.Changelog, error) {
	return s.repo.GetChangelogByID(ctx, id)
}

// ListChangelogs returns all entries newest-first. The public list is served
// through a short-lived cache that mutations invalidate; a cache failure
// falls back to the database.
func (s *ChangelogService) ListChangelogs(ctx context.Context) ([]*data.Changelog, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(changelogListKey); err == nil && raw != nil {
			var cached []*data.Changelog
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	changelogs, err := s.repo.ListChangelogs(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(changelogs); err == nil {
			_ = s.cache.Set(changelogListKey, raw, changelogListTTL)
		}
	}
	return changelogs, nil
}

func (s *ChangelogService) invalidateList() {
	if s.cache != nil {
		_ = s.cache.Delete(changelogListKey)
	}
}
