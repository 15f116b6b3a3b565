// internal/blog/blog.go
//
// Blog listing and detail for one tenant.
//
// Context
// -------
// Posts come from the portal in two flavours: practice-specific
// (?practice_id=) and global.  A tenant sees the union, with its own copy
// of a post replacing the global one.  Only posts with show == true are
// listed.
//
// Both operations degrade instead of failing: List always returns a
// (possibly empty) slice and Get only fails with upstream.ErrNotFound.
package blog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/lumina/internal/ident"
	"github.com/yanizio/lumina/internal/practice"
	"github.com/yanizio/lumina/internal/upstream"
)

const untitled = "Untitled Blog Post"

// Source is the portal subset used here.
type Source interface {
	Blogs(ctx context.Context, practiceID string) ([]upstream.Blog, error)
	Blog(ctx context.Context, blogID, practiceID string) (*upstream.Blog, error)
}

// Resolver maps a tenant identifier to a practice ID.
type Resolver interface {
	ResolveIdentifier(ctx context.Context, id ident.Identifier) (practice.ID, error)
}

// Post is a blog entry as the site renders it.
type Post struct {
	ID             string `json:"id"`
	PracticeID     string `json:"practice_id,omitempty"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Date           string `json:"date"`
	Show           bool   `json:"show"`
	HeaderImage    string `json:"header_image,omitempty"`
	ThumbnailImage string `json:"thumbnail_image,omitempty"`
	IsGlobal       bool   `json:"isGlobal"`
	URL            string `json:"url"`
}

type Service struct {
	src Source
	res Resolver
	now func() time.Time
	log *zap.Logger
}

// New returns a Service.  log may be nil.
func New(src Source, res Resolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.L()
	}
	return &Service{src: src, res: res, now: time.Now, log: log.Named("blog")}
}

// List returns the tenant's visible posts, newest first.  When identifier
// does not resolve only global posts are listed.
func (s *Service) List(ctx context.Context, identifier string) []Post {
	practiceID := s.practiceID(ctx, identifier)

	var (
		g              errgroup.Group
		local, global  []upstream.Blog
		localErr, gErr error
	)
	if practiceID != "" {
		g.Go(func() error {
			local, localErr = s.src.Blogs(ctx, practiceID)
			return nil
		})
	}
	g.Go(func() error {
		global, gErr = s.src.Blogs(ctx, "")
		return nil
	})
	_ = g.Wait()

	if localErr != nil {
		s.log.Warn("practice blogs unavailable", zap.String("practice_id", practiceID), zap.Error(localErr))
	}
	if gErr != nil {
		s.log.Warn("global blogs unavailable", zap.Error(gErr))
	}

	byID := make(map[string]Post)
	order := make([]string, 0, len(global)+len(local))
	add := func(b upstream.Blog, isGlobal bool) {
		if b.Show == nil || !*b.Show {
			return
		}
		id := b.ID.String()
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		p := toPost(b, s.today())
		p.IsGlobal = isGlobal
		p.URL = fmt.Sprintf("/%s/blog/%s", identifier, id)
		byID[id] = p
	}
	for _, b := range global {
		add(b, true)
	}
	for _, b := range local {
		add(b, false)
	}

	out := make([]Post, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return parseDate(out[i].Date).After(parseDate(out[j].Date))
	})
	return out
}

// Recent returns at most n posts from List.
func (s *Service) Recent(ctx context.Context, identifier string, n int) []Post {
	posts := s.List(ctx, identifier)
	if len(posts) > n {
		posts = posts[:n]
	}
	return posts
}

// Get returns one post.  A customer code that resolves gets its
// practice-specific copy when one exists; everyone else gets the global
// post.
func (s *Service) Get(ctx context.Context, identifier, blogID string) (Post, error) {
	if blogID == "" {
		return Post{}, upstream.ErrNotFound
	}

	id := ident.Classify(identifier)
	if id.Kind == ident.CustomerCode {
		if pid := s.practiceID(ctx, identifier); pid != "" {
			b, err := s.src.Blog(ctx, blogID, pid)
			if err == nil && b.PracticeID != "" {
				return s.detail(*b, identifier), nil
			}
		}
	}

	b, err := s.src.Blog(ctx, blogID, "")
	if err != nil {
		s.log.Debug("blog not found", zap.String("blog_id", blogID), zap.Error(err))
		return Post{}, fmt.Errorf("blog %s: %w", blogID, upstream.ErrNotFound)
	}
	return s.detail(*b, identifier), nil
}

func (s *Service) detail(b upstream.Blog, identifier string) Post {
	p := toPost(b, s.today())
	p.IsGlobal = b.PracticeID == ""
	p.URL = fmt.Sprintf("/%s/blog/%s", identifier, p.ID)
	return p
}

func (s *Service) practiceID(ctx context.Context, identifier string) string {
	if identifier == "" {
		return ""
	}
	pid, err := s.res.ResolveIdentifier(ctx, ident.Classify(identifier))
	if err != nil {
		s.log.Info("identifier unresolved, global posts only",
			zap.String("identifier", identifier), zap.Error(err))
		return ""
	}
	return string(pid)
}

func (s *Service) today() string { return s.now().UTC().Format("2006-01-02") }

func toPost(b upstream.Blog, today string) Post {
	p := Post{
		ID:             b.ID.String(),
		PracticeID:     b.PracticeID.String(),
		Title:          b.Title,
		Content:        b.Content,
		Date:           b.Date,
		Show:           b.Show == nil || *b.Show,
		HeaderImage:    b.HeaderImage,
		ThumbnailImage: b.ThumbnailImage,
	}
	if p.Title == "" {
		p.Title = untitled
	}
	if p.Date == "" {
		p.Date = today
	}
	if p.ThumbnailImage == "" {
		p.ThumbnailImage = b.JPG
	}
	return p
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate accepts the layouts the portal has been seen to emit.  Unknown
// formats sort last.
func parseDate(s string) time.Time {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
