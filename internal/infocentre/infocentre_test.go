package infocentre

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/upstream"
)

type fakeSource struct {
	cats    []upstream.Category
	details map[string]*upstream.Category
	items   []upstream.Item
	attrs   map[string][]upstream.Attribute
}

func (f *fakeSource) SectionCategories(context.Context) ([]upstream.Category, error) {
	if f.cats == nil {
		return nil, upstream.ErrTimeout
	}
	return append([]upstream.Category(nil), f.cats...), nil
}

func (f *fakeSource) SectionCategory(_ context.Context, id string) (*upstream.Category, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	return d, nil
}

func (f *fakeSource) SectionItems(context.Context) ([]upstream.Item, error) {
	return f.items, nil
}

func (f *fakeSource) ItemAttributes(_ context.Context, id string) ([]upstream.Attribute, error) {
	return f.attrs[id], nil
}

func fixture() *fakeSource {
	return &fakeSource{
		cats: []upstream.Category{
			{ID: "2", Name: "Lenses", OrderBy: "2"},
			{ID: "1", Name: "Conditions", OrderBy: "1"},
			{ID: "3", Name: "Broken", OrderBy: "0"},
		},
		details: map[string]*upstream.Category{
			"1": {ID: "1", Name: "Conditions", ThumbnailImgURL: "c.png"},
			"2": {ID: "2", Name: "Lenses", ThumbnailImgURL: "l.png", BannerImgURL: "lb.png"},
		},
		items: []upstream.Item{
			{ID: "10", Name: "Glaucoma", SectionCategoryID: "1", Enabled: true, ThumbnailImgURL: "g.png"},
			{ID: "11", Name: "Draft", SectionCategoryID: "1", Enabled: false},
			{ID: "12", Name: "Toric", SectionCategoryID: "2", Enabled: true, ImgURL: "t.png"},
			{ID: "13", Name: "Orphan", SectionCategoryID: "99", Enabled: true},
		},
		attrs: map[string][]upstream.Attribute{
			"10": {
				{ID: "1", Name: "bannerImg", Data: "banner.jpg"},
				{ID: "2", Name: "Overview", Data: `<p>About</p><img src="../images/eye.png">`},
				{ID: "3", Name: "Symptoms", Data: "blurry"},
			},
			"12": {
				{ID: "4", Name: "Body", Data: "text"},
				{ID: "5", Name: "Reference.2.Title", Data: "Second"},
				{ID: "6", Name: "Reference.1.Title", Data: "First"},
				{ID: "7", Name: "Reference.1.Url", Data: "https://a.example"},
			},
		},
	}
}

func newTestService(src Source) *Service { return New(src, zap.NewNop()) }

func TestCategoriesSortedAndEnriched(t *testing.T) {
	got, err := newTestService(fixture()).Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []Category{
		{ID: "1", Name: "Conditions", Order: 1, Thumbnail: "c.png"},
		{ID: "2", Name: "Lenses", Order: 2, Thumbnail: "l.png", Banner: "lb.png"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCategoriesListFailure(t *testing.T) {
	if _, err := newTestService(&fakeSource{}).Categories(context.Background()); !errors.Is(err, upstream.ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
}

func TestCategoryFiltersItems(t *testing.T) {
	l, err := newTestService(fixture()).Category(context.Background(), "1")
	if err != nil {
		t.Fatal(err)
	}
	want := []ItemSummary{{ID: "10", Name: "Glaucoma", Thumbnail: "g.png"}}
	if l.Category.Name != "Conditions" || !reflect.DeepEqual(l.Items, want) {
		t.Fatalf("got %+v", l)
	}

	if _, err := newTestService(fixture()).Category(context.Background(), "404"); !errors.Is(err, upstream.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestItemWithOverview(t *testing.T) {
	a, err := newTestService(fixture()).Item(context.Background(), "10")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "Glaucoma" || a.Category.ID != "1" || a.Banner != "banner.jpg" {
		t.Fatalf("article = %+v", a)
	}
	if !a.HasOverview || a.Overview != `<p>About</p><img src="/images/Body/eye.png">` {
		t.Fatalf("overview = %q", a.Overview)
	}
	if len(a.Attributes) != 0 {
		t.Fatalf("attributes should be hidden when an overview exists: %+v", a.Attributes)
	}
}

func TestItemWithoutOverview(t *testing.T) {
	a, err := newTestService(fixture()).Item(context.Background(), "12")
	if err != nil {
		t.Fatal(err)
	}
	if a.HasOverview || len(a.Attributes) != 4 {
		t.Fatalf("article = %+v", a)
	}
	want := []Reference{{Title: "First", URL: "https://a.example"}, {Title: "Second"}}
	if !reflect.DeepEqual(a.References, want) {
		t.Fatalf("references = %+v", a.References)
	}
}

func TestItemNotFound(t *testing.T) {
	s := newTestService(fixture())
	if _, err := s.Item(context.Background(), "999"); !errors.Is(err, upstream.ErrNotFound) {
		t.Fatalf("missing item: %v", err)
	}
	if _, err := s.Item(context.Background(), "13"); !errors.Is(err, upstream.ErrNotFound) {
		t.Fatalf("missing category: %v", err)
	}
}

func TestRewriteImages(t *testing.T) {
	cases := map[string]string{
		`<img src="images/a.png">`:                 `<img src="/images/Body/a.png">`,
		`<img alt="x" src='/old/Images/b.jpg' />`:  `<img alt="x" src='/images/Body/b.jpg' />`,
		`<img src="https://cdn.example/images/c">`: `<img src="https://cdn.example/images/c">`,
		`<img src="//cdn.example/images/d.png">`:   `<img src="//cdn.example/images/d.png">`,
		`<img src="pics/e.png">`:                   `<img src="pics/e.png">`,
		`no images here`:                           `no images here`,
	}
	for in, want := range cases {
		if got := RewriteImages(in); got != want {
			t.Errorf("RewriteImages(%q) = %q, want %q", in, got, want)
		}
	}
}
