// internal/infocentre/infocentre.go
//
// Info-centre browsing: categories, the items in one category, and a
// single article assembled from its attributes.  Content is not
// practice-scoped; the tenant only brands the page around it.
package infocentre

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/lumina/internal/upstream"
)

// detailFanOut caps concurrent category-detail requests.
const detailFanOut = 8

// Attribute names with special meaning.
const (
	attrBanner   = "bannerImg"
	attrOverview = "Overview"
)

type Source interface {
	SectionCategories(ctx context.Context) ([]upstream.Category, error)
	SectionCategory(ctx context.Context, id string) (*upstream.Category, error)
	SectionItems(ctx context.Context) ([]upstream.Item, error)
	ItemAttributes(ctx context.Context, itemID string) ([]upstream.Attribute, error)
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"orderby"`
	Thumbnail string `json:"thumbnail_img_url"`
	Banner    string `json:"banner_img_url"`
}

type ItemSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail_img_url"`
}

// Listing is one category page.
type Listing struct {
	Category Category      `json:"category"`
	Items    []ItemSummary `json:"items"`
}

type Attribute struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data string `json:"data"`
}

type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Article is one rendered info-centre item.  Attributes is only filled
// when the item has no Overview.
type Article struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Banner      string      `json:"banner"`
	Overview    string      `json:"overview"`
	HasOverview bool        `json:"hasOverview"`
	Attributes  []Attribute `json:"attributes"`
	References  []Reference `json:"references"`
}

type Service struct {
	src Source
	log *zap.Logger
}

func New(src Source, log *zap.Logger) *Service {
	if log == nil {
		log = zap.L()
	}
	return &Service{src: src, log: log.Named("infocentre")}
}

// Categories lists every category in display order, each enriched with
// its detail record.  Categories whose detail fails are dropped.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	raw, err := s.src.SectionCategories(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].OrderBy.Int() < raw[j].OrderBy.Int() })

	details := make([]*Category, len(raw))
	var g errgroup.Group
	g.SetLimit(detailFanOut)
	for i, c := range raw {
		g.Go(func() error {
			d, err := s.src.SectionCategory(ctx, c.ID.String())
			if err != nil {
				s.log.Warn("category detail failed", zap.String("category_id", c.ID.String()), zap.Error(err))
				return nil
			}
			cat := toCategory(c)
			if d.ThumbnailImgURL != "" {
				cat.Thumbnail = d.ThumbnailImgURL
			}
			if d.BannerImgURL != "" {
				cat.Banner = d.BannerImgURL
			}
			details[i] = &cat
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Category, 0, len(details))
	for _, d := range details {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

// Category returns one category and its enabled items.
func (s *Service) Category(ctx context.Context, id string) (Listing, error) {
	var (
		g     errgroup.Group
		cat   *upstream.Category
		items []upstream.Item
		cErr  error
		iErr  error
	)
	g.Go(func() error {
		cat, cErr = s.src.SectionCategory(ctx, id)
		return nil
	})
	g.Go(func() error {
		items, iErr = s.src.SectionItems(ctx)
		return nil
	})
	_ = g.Wait()

	if cErr != nil {
		return Listing{}, fmt.Errorf("category %s: %w", id, cErr)
	}
	if iErr != nil {
		s.log.Warn("section items unavailable", zap.Error(iErr))
	}

	l := Listing{Category: toCategory(*cat), Items: []ItemSummary{}}
	if l.Category.ID == "" {
		l.Category.ID = id
	}
	for _, it := range items {
		if it.SectionCategoryID.String() != id || !it.Enabled {
			continue
		}
		l.Items = append(l.Items, ItemSummary{
			ID:        it.ID.String(),
			Name:      it.Name,
			Thumbnail: firstNonEmpty(it.ThumbnailImgURL, it.ImgURL),
		})
	}
	return l, nil
}

// Item assembles the article for item id.
func (s *Service) Item(ctx context.Context, id string) (Article, error) {
	var (
		g     errgroup.Group
		cats  []upstream.Category
		items []upstream.Item
		cErr  error
		iErr  error
	)
	g.Go(func() error {
		cats, cErr = s.src.SectionCategories(ctx)
		return nil
	})
	g.Go(func() error {
		items, iErr = s.src.SectionItems(ctx)
		return nil
	})
	_ = g.Wait()
	if iErr != nil {
		return Article{}, fmt.Errorf("item %s: %w", id, iErr)
	}
	if cErr != nil {
		return Article{}, fmt.Errorf("item %s categories: %w", id, cErr)
	}

	item, ok := findItem(items, id)
	if !ok {
		return Article{}, fmt.Errorf("item %s: %w", id, upstream.ErrNotFound)
	}
	cat, ok := findCategory(cats, item.SectionCategoryID.String())
	if !ok {
		return Article{}, fmt.Errorf("category for item %s: %w", id, upstream.ErrNotFound)
	}

	attrs, err := s.src.ItemAttributes(ctx, id)
	if err != nil {
		s.log.Warn("item attributes unavailable", zap.String("item_id", id), zap.Error(err))
	}

	a := Article{
		ID:         item.ID.String(),
		Name:       item.Name,
		Category:   toCategory(cat),
		Attributes: []Attribute{},
	}
	var rest []Attribute
	for _, at := range attrs {
		attr := Attribute{ID: at.ID.String(), Name: at.Name, Data: RewriteImages(at.Data)}
		switch at.Name {
		case attrBanner:
			a.Banner = attr.Data
		case attrOverview:
			a.Overview = attr.Data
			a.HasOverview = true
		default:
			rest = append(rest, attr)
		}
	}
	if !a.HasOverview {
		a.Attributes = append(a.Attributes, rest...)
	}
	a.References = references(a.Attributes)
	return a, nil
}

var imgSrc = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// RewriteImages points relative <img src> paths containing "images/" at
// /images/Body/<file>.  Absolute and protocol-relative sources are left
// alone.
func RewriteImages(html string) string {
	return imgSrc.ReplaceAllStringFunc(html, func(tag string) string {
		m := imgSrc.FindStringSubmatch(tag)
		src := m[1]
		if absoluteURL.MatchString(src) || strings.HasPrefix(src, "//") {
			return tag
		}
		if !strings.Contains(strings.ToLower(src), "images/") {
			return tag
		}
		file := src[strings.LastIndex(src, "/")+1:]
		return strings.Replace(tag, src, "/images/Body/"+file, 1)
	})
}

var referenceTitle = regexp.MustCompile(`^Reference\.(\d+)\.Title$`)

// references pairs Reference.N.Title with Reference.N.Url, ordered by N.
func references(attrs []Attribute) []Reference {
	type numbered struct {
		n int
		Reference
	}
	urls := make(map[string]string)
	for _, a := range attrs {
		if strings.HasPrefix(a.Name, "Reference.") && strings.HasSuffix(a.Name, ".Url") {
			urls[a.Name] = a.Data
		}
	}
	var refs []numbered
	for _, a := range attrs {
		m := referenceTitle.FindStringSubmatch(a.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		refs = append(refs, numbered{n, Reference{Title: a.Data, URL: urls["Reference."+m[1]+".Url"]}})
	}
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].n < refs[j].n })

	out := make([]Reference, len(refs))
	for i, r := range refs {
		out[i] = r.Reference
	}
	return out
}

func findItem(items []upstream.Item, id string) (upstream.Item, bool) {
	for _, it := range items {
		if it.ID.String() == id {
			return it, true
		}
	}
	return upstream.Item{}, false
}

func findCategory(cats []upstream.Category, id string) (upstream.Category, bool) {
	for _, c := range cats {
		if c.ID.String() == id {
			return c, true
		}
	}
	return upstream.Category{}, false
}

func toCategory(c upstream.Category) Category {
	return Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		Order:     c.OrderBy.Int(),
		Thumbnail: c.ThumbnailImgURL,
		Banner:    c.BannerImgURL,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
