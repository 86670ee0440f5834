package present

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/i18n"
)

//go:embed templates/*.html
var partialsFS embed.FS

// Page is the data every page template receives.
type Page struct {
	Lang       string
	Title      string
	AltLangURL string
	Body       any
}

// Renderer holds one template set per page. Each set is the shared partials
// plus the page file, so pages may all define the same blocks.
type Renderer struct {
	pages map[string]*template.Template
}

var baseFuncs = template.FuncMap{
	// replaced per request with the printer of the resolved language
	"t": func(key string, args ...any) string { return key },
}

// NewRenderer parses every file matching pattern in pagesFS as a page.
func NewRenderer(pagesFS fs.FS, pattern string) (*Renderer, error) {
	partials, err := template.New("partials").Funcs(baseFuncs).ParseFS(partialsFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	files, err := fs.Glob(pagesFS, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no pages match %q", pattern)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		set, err := partials.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(pagesFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[path.Base(file)] = set
	}
	return r, nil
}

// Render executes the page's "layout" template with a "t" function bound to
// tag. The page is buffered so a template error never yields half a page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, tag language.Tag, data Page) error {
	set, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	set, err := set.Clone()
	if err != nil {
		return err
	}
	printer := i18n.Printer(tag)
	set.Funcs(template.FuncMap{"t": printer.Sprintf})

	data.Lang = tag.String()
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// AltLangURL links the current page in the other supported language.
func AltLangURL(r *http.Request, tag language.Tag) string {
	other := tag
	for _, t := range i18n.Supported() {
		if i18n.IsChinese(t) != i18n.IsChinese(tag) {
			other = t
			break
		}
	}
	query := r.URL.Query()
	query.Set(i18n.LangParam, other.String())
	return r.URL.Path + "?" + query.Encode()
}
