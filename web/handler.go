// Package web serves the public, read-only browsing pages.
package web

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/apiclient"
	"github.com/xiuxian-wiki/encyclopedia/i18n"
	"github.com/xiuxian-wiki/encyclopedia/models"
	"github.com/xiuxian-wiki/encyclopedia/present"
)

//go:embed templates/*.html
var pagesFS embed.FS

// RecordReader is the read side of the API. *apiclient.Client satisfies it.
type RecordReader interface {
	Categories(ctx context.Context) ([]apiclient.CategorySummary, error)
	List(ctx context.Context, c models.Category) ([]models.Record, error)
	Get(ctx context.Context, c models.Category, id string) (models.Record, error)
}

type Handler struct {
	api      RecordReader
	pages    *present.Renderer
	fallback language.Tag
	log      *zap.Logger
}

func NewHandler(api RecordReader, fallback language.Tag, log *zap.Logger) (*Handler, error) {
	pages, err := present.NewRenderer(pagesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web pages: %w", err)
	}
	return &Handler{api: api, pages: pages, fallback: fallback, log: log}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.HandleHome)
	mux.HandleFunc("GET /category/{category}", h.HandleCategory)
	mux.HandleFunc("GET /category/{category}/{id}", h.HandleItem)
}

func categoryURL(c models.Category) string {
	return "/category/" + string(c)
}

func itemURL(c models.Category, id string) string {
	return categoryURL(c) + "/" + url.PathEscape(id)
}

func (h *Handler) language(w http.ResponseWriter, r *http.Request) language.Tag {
	tag, persist := i18n.ResolveTag(r, h.fallback)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return tag
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tag language.Tag, status int, page, title string, body any) {
	data := present.Page{Title: title, AltLangURL: present.AltLangURL(r, tag), Body: body}
	if err := h.pages.Render(w, status, page, tag, data); err != nil {
		h.log.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// message renders a page that only shows text, such as a load failure.
func (h *Handler) message(w http.ResponseWriter, r *http.Request, tag language.Tag, status int, key string) {
	text := i18n.Printer(tag).Sprintf(key)
	h.render(w, r, tag, status, "message.html", text, messagePage{Text: text})
}

type messagePage struct {
	Text string
}

// --- Home ---

type homeCard struct {
	Title       string
	Subtitle    string
	Description string
	Icon        string
	Count       int64
	URL         string
}

type homePage struct {
	Cards []homeCard
}

func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	tag := h.language(w, r)
	summaries, err := h.api.Categories(r.Context())
	if err != nil {
		h.log.Error("failed to load categories", zap.Error(err))
		h.message(w, r, tag, http.StatusBadGateway, "error.load")
		return
	}

	var page homePage
	for _, s := range summaries {
		c, ok := models.ParseCategory(s.Key)
		if !ok {
			continue
		}
		card := homeCard{Title: s.ChineseName, Subtitle: s.Name, Description: s.Description, Icon: s.Icon, Count: s.Count, URL: categoryURL(c)}
		if !i18n.IsChinese(tag) {
			card.Title, card.Subtitle = s.Name, s.ChineseName
		}
		page.Cards = append(page.Cards, card)
	}
	h.render(w, r, tag, http.StatusOK, "home.html", i18n.Printer(tag).Sprintf("site.title"), page)
}

// --- Category list ---

type listCard struct {
	Name   string
	URL    string
	Fields []present.FieldView
}

type listPage struct {
	Title  string
	Icon   string
	Count  string
	Empty  string
	Search present.SearchForm
	Cards  []listCard
}

func (h *Handler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := models.ParseCategory(r.PathValue("category"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	tag := h.language(w, r)
	records, err := h.api.List(r.Context(), c)
	if err != nil {
		h.log.Error("failed to load records", zap.String("category", c.String()), zap.Error(err))
		h.message(w, r, tag, http.StatusBadGateway, "error.load")
		return
	}

	printer := i18n.Printer(tag)
	title := present.CategoryTitle(c, tag)
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	filters := present.ParseFilters(r.URL.Query().Get)
	shown := present.ApplyFilters(records, query, filters)

	page := listPage{
		Title:  title,
		Icon:   c.Info().Icon,
		Empty:  printer.Sprintf("list.empty", title),
		Search: present.NewSearchForm(categoryURL(c), query, printer.Sprintf("list.search_placeholder", title), present.FilterOptions(records, filters, tag)),
	}
	if query != "" || len(filters) > 0 {
		page.Count = printer.Sprintf("list.count_filtered", len(shown), title)
	} else {
		page.Count = printer.Sprintf("list.count", len(shown), title)
	}
	for _, rec := range shown {
		page.Cards = append(page.Cards, listCard{
			Name:   rec.Base().Name,
			URL:    itemURL(c, rec.Base().ID),
			Fields: present.CardFields(rec, tag),
		})
	}
	h.render(w, r, tag, http.StatusOK, "category.html", title, page)
}

// --- Item detail ---

type itemPage struct {
	Category  string
	Name      string
	ImageURL  string
	Fields    []present.FieldView
	CreatedAt string
	UpdatedAt string
	BackURL   string
}

func (h *Handler) HandleItem(w http.ResponseWriter, r *http.Request) {
	c, ok := models.ParseCategory(r.PathValue("category"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	tag := h.language(w, r)
	rec, err := h.api.Get(r.Context(), c, r.PathValue("id"))
	if apiclient.IsStatus(err, http.StatusNotFound) {
		h.message(w, r, tag, http.StatusNotFound, "error.not_found")
		return
	}
	if err != nil {
		h.log.Error("failed to load record", zap.String("category", c.String()), zap.Error(err))
		h.message(w, r, tag, http.StatusBadGateway, "error.load")
		return
	}

	base := rec.Base()
	page := itemPage{
		Category:  present.CategoryTitle(c, tag),
		Name:      base.Name,
		Fields:    present.FieldViews(rec, tag),
		CreatedAt: base.CreatedAt.Format(time.DateOnly),
		UpdatedAt: base.UpdatedAt.Format(time.DateOnly),
		BackURL:   categoryURL(c),
	}
	if base.ImageURL != nil {
		page.ImageURL = *base.ImageURL
	}
	h.render(w, r, tag, http.StatusOK, "item.html", base.Name, page)
}
