// internal/head/builder.go
//
// The Builder collects everything that ends up inside a page's <head>.  It
// is scoped to one request.  The tenant middleware seeds it from the
// practice settings and handlers refine it before the layout renders.
//
// Features
// --------
//   - SetTitle / SetDescription – single values, last call wins.
//   - Property / Name           – escaped <meta> tags, deduplicated by key.
//   - Link                      – raw <link> tags, deduplicated.
//   - JSONLD                    – structured data blocks.
package head

import (
	"html/template"
	"strings"
	"sync"
)

// DefaultTitle is used when the practice has no name.
const DefaultTitle = "Lumina Blue"

// Builder is safe for concurrent use, though a request normally touches it
// from one goroutine.
type Builder struct {
	mu sync.Mutex

	title       string
	description string

	metas  []string
	links  []string
	jsonLD []string

	// index maps a dedupe key to its slot in metas so later calls replace.
	index map[string]int
	seen  map[string]struct{}
}

func New() *Builder {
	return &Builder{index: make(map[string]int), seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.
func (b *Builder) SetTitle(t string) {
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// SetDescription sets the description meta tag and its og: twin.
func (b *Builder) SetDescription(d string) {
	b.mu.Lock()
	b.description = d
	b.mu.Unlock()
	b.Name("description", d)
	b.Property("og:description", d)
}

// TitleText returns the raw title, falling back to DefaultTitle.
func (b *Builder) TitleText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.title == "" {
		return DefaultTitle
	}
	return b.title
}

// Description returns the raw description.
func (b *Builder) Description() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.description
}

// Title returns a fully formed <title> tag.
func (b *Builder) Title() template.HTML {
	return template.HTML("<title>" + template.HTMLEscapeString(b.TitleText()) + "</title>")
}

// Property sets <meta property=… content=…>; a repeated property replaces
// the earlier value.
func (b *Builder) Property(prop, content string) {
	b.setMeta("property:"+prop, `<meta property="`+esc(prop)+`" content="`+esc(content)+`">`)
}

// Name sets <meta name=… content=…>.
func (b *Builder) Name(name, content string) {
	b.setMeta("name:"+name, `<meta name="`+esc(name)+`" content="`+esc(content)+`">`)
}

func (b *Builder) setMeta(key, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i, ok := b.index[key]; ok {
		b.metas[i] = tag
		return
	}
	b.index[key] = len(b.metas)
	b.metas = append(b.metas, tag)
}

func (b *Builder) Link(tag string)  { b.add("link:"+tag, &b.links, tag) }
func (b *Builder) JSONLD(js string) { b.add("jsonld:"+js, &b.jsonLD, js) }

func (b *Builder) add(key string, tgt *[]string, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// ------------------------------------------------------------------
// Rendering helpers called from theme templates
// ------------------------------------------------------------------

func (b *Builder) Metas() template.HTML { return b.concat(b.metas) }
func (b *Builder) Links() template.HTML { return b.concat(b.links) }

// JSON returns all JSON-LD blocks wrapped in <script> tags.
func (b *Builder) JSON() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	for _, js := range b.jsonLD {
		sb.WriteString(`<script type="application/ld+json">`)
		sb.WriteString(js)
		sb.WriteString(`</script>`)
	}
	return template.HTML(sb.String())
}

func (b *Builder) concat(sl []string) template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return template.HTML(strings.Join(sl, ""))
}

func esc(s string) string { return template.HTMLEscapeString(s) }
