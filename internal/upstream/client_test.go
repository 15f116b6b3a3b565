package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{
		PassportURL:   srv.URL,
		PortalURL:     srv.URL,
		OcumailURL:    srv.URL,
		LookupTimeout: 200 * time.Millisecond,
	}, zap.NewNop())
}

func TestPracticeProfileDecodesNumericID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/public/practices/71", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":71,"name":"Eye Co","zip":12345,"hours":"1-09:00-17:00"}`))
	})
	c := newTestClient(t, mux)

	p, err := c.PracticeProfile(context.Background(), "71")
	if err != nil {
		t.Fatalf("PracticeProfile: %v", err)
	}
	if p.ID != "71" || p.Name != "Eye Co" || p.Zip != "12345" {
		t.Fatalf("unexpected practice %+v", p)
	}
}

func TestPracticeByCodeErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/public/practice_by_customer_code", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("customer_code") {
		case "OK01":
			w.Write([]byte(`{"id":"900","name":"Found"}`))
		case "GONE":
			http.NotFound(w, r)
		case "BOOM":
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"message":"database down"}`))
		case "TEAPOT":
			w.WriteHeader(http.StatusTeapot)
		case "NONAME":
			w.Write([]byte(`{"id":"5"}`))
		case "JUNK":
			w.Write([]byte(`<html>`))
		case "SLOW":
			time.Sleep(time.Second)
			w.Write([]byte(`{"id":"1","name":"late"}`))
		}
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	p, err := c.PracticeByCode(ctx, "OK01")
	if err != nil || p.ID != "900" {
		t.Fatalf("OK01: p=%+v err=%v", p, err)
	}

	if _, err := c.PracticeByCode(ctx, "GONE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GONE: want ErrNotFound, got %v", err)
	}

	_, err = c.PracticeByCode(ctx, "BOOM")
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Status != http.StatusBadGateway || ue.Message != "database down" {
		t.Fatalf("BOOM: want UpstreamError 502/database down, got %v", err)
	}

	_, err = c.PracticeByCode(ctx, "TEAPOT")
	if !errors.As(err, &ue) || ue.Message != http.StatusText(http.StatusTeapot) {
		t.Fatalf("TEAPOT: want status text message, got %v", err)
	}

	if _, err := c.PracticeByCode(ctx, "NONAME"); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("NONAME: want ErrInvalidData, got %v", err)
	}
	if _, err := c.PracticeByCode(ctx, "JUNK"); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("JUNK: want ErrInvalidData, got %v", err)
	}
	if _, err := c.PracticeByCode(ctx, "SLOW"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("SLOW: want ErrTimeout, got %v", err)
	}
	if _, err := c.PracticeByCode(ctx, ""); !errors.Is(err, ErrNoIdentifier) {
		t.Fatalf("empty: want ErrNoIdentifier, got %v", err)
	}
}

func TestUnreachableIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{PassportURL: url}, zap.NewNop())
	if _, err := c.PracticeProfile(context.Background(), "1"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
}

func TestBearerAndQueryParams(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/website/71/0", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer k3y" {
			t.Errorf("website auth header = %q", got)
		}
		w.Write([]byte(`{"banners":[{"img":"x.png","banner_title":"T","banner_title_font_size":24}]}`))
	})
	mux.HandleFunc("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("setting_object_id") != "71" || q.Get("setting_object_type") != "Practice" {
			t.Errorf("settings query = %v", q)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k3y" {
			t.Errorf("settings auth header = %q", got)
		}
		w.Write([]byte(`[{"setting_name":"PrimaryColor","setting_value":"teal"},{"setting_name":"Zoom","setting_value":3}]`))
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	web, err := c.Website(ctx, "71", "k3y")
	if err != nil {
		t.Fatalf("Website: %v", err)
	}
	if len(web.Banners) != 1 || web.Banners[0].BannerTitleFontSize != "24" {
		t.Fatalf("banners = %+v", web.Banners)
	}

	rows, err := c.PracticeSettings(ctx, "71", "k3y")
	if err != nil {
		t.Fatalf("PracticeSettings: %v", err)
	}
	if len(rows) != 2 || rows[0].Value != "teal" || rows[1].Value != "3" {
		t.Fatalf("settings rows = %+v", rows)
	}
}

func TestWebsiteToleratesNonObjectSections(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/website/71/0", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"about":[],"service_description":null,"banners":[{"banner_title":"Hi","img":"a.png"}]}`))
	})
	c := newTestClient(t, mux)

	web, err := c.Website(context.Background(), "71", "k")
	if err != nil {
		t.Fatalf("Website: %v", err)
	}
	if len(web.Banners) != 1 || web.Banners[0].Img != "a.png" {
		t.Fatalf("banners = %+v", web.Banners)
	}
	if web.About == nil || len(web.About) != 0 {
		t.Fatalf("about = %#v, want empty map", web.About)
	}
}

func TestObjectUnmarshal(t *testing.T) {
	var o Object
	if err := json.Unmarshal([]byte(`{"body":"hello"}`), &o); err != nil || o["body"] != "hello" {
		t.Fatalf("object = %#v, %v", o, err)
	}
	for _, in := range []string{`[]`, `"x"`, `0`} {
		var o Object
		if err := json.Unmarshal([]byte(in), &o); err != nil || o == nil || len(o) != 0 {
			t.Errorf("Unmarshal(%s) = %#v, %v", in, o, err)
		}
	}
}

func TestBlogWithoutIDIsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/blogs/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	c := newTestClient(t, mux)
	if _, err := c.Blog(context.Background(), "9", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestTextUnmarshal(t *testing.T) {
	var v struct {
		A, B, C, D Text
	}
	if err := json.Unmarshal([]byte(`{"A":71,"B":"x","C":null,"D":true}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.A != "71" || v.B != "x" || v.C != "" || v.D != "true" {
		t.Fatalf("got %+v", v)
	}
	if Text("12").Int() != 12 || Text("2.5").Int() != 2 || Text("nope").Int() != 0 {
		t.Fatal("Int conversion mismatch")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 200},
		{ErrNotFound, 404},
		{ErrNoIdentifier, 400},
		{ErrTimeout, 504},
		{&UpstreamError{Status: 502}, 502},
		{ErrInvalidData, 502},
		{errors.New("other"), 500},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
