// Package console is the server-rendered admin console. It reaches the
// records only through the JSON API.
package console

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xiuxian-wiki/encyclopedia/apiclient"
	"github.com/xiuxian-wiki/encyclopedia/i18n"
	"github.com/xiuxian-wiki/encyclopedia/models"
	"github.com/xiuxian-wiki/encyclopedia/present"
)

const (
	// TokenCookieName holds the admin's bearer token.
	TokenCookieName = "wiki_admin_token"
	loginPath       = "/admin/login"
	dashboardPath   = "/admin/"
	tokenTTL        = 24 * time.Hour
)

//go:embed templates/*.html
var pagesFS embed.FS

// Backend is the API surface the console needs. *apiclient.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, username, password string) (*apiclient.LoginResult, error)
	Me(ctx context.Context, token string) (*apiclient.User, error)
	Categories(ctx context.Context) ([]apiclient.CategorySummary, error)
	List(ctx context.Context, c models.Category) ([]models.Record, error)
	Get(ctx context.Context, c models.Category, id string) (models.Record, error)
	Create(ctx context.Context, token string, c models.Category, payload any) (models.Record, error)
	Update(ctx context.Context, token string, c models.Category, id string, payload any) (models.Record, error)
	Delete(ctx context.Context, token string, c models.Category, id string) error
}

type Handler struct {
	backend  Backend
	pages    *present.Renderer
	fallback language.Tag
	log      *zap.Logger
}

func NewHandler(backend Backend, fallback language.Tag, log *zap.Logger) (*Handler, error) {
	pages, err := present.NewRenderer(pagesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("console pages: %w", err)
	}
	return &Handler{backend: backend, pages: pages, fallback: fallback, log: log}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("GET /admin", http.RedirectHandler(dashboardPath, http.StatusFound))
	mux.HandleFunc("GET /admin/login", h.HandleLoginPage)
	mux.HandleFunc("POST /admin/login", h.HandleLogin)
	mux.HandleFunc("POST /admin/logout", h.HandleLogout)
	mux.Handle("GET /admin/{$}", h.requireSession(h.HandleDashboard))
	mux.Handle("GET /admin/{category}", h.requireSession(h.HandleCategory))
	mux.Handle("POST /admin/{category}", h.requireSession(h.HandleCreate))
	mux.Handle("POST /admin/{category}/{id}", h.requireSession(h.HandleUpdate))
	mux.Handle("POST /admin/{category}/{id}/delete", h.requireSession(h.HandleDelete))
	mux.Handle("POST /admin/{category}/bulk-delete", h.requireSession(h.HandleBulkDelete))
	mux.Handle("POST /admin/{category}/import", h.requireSession(h.HandleImport))
	mux.Handle("GET /admin/{category}/export", h.requireSession(h.HandleExport))
}

// --- Session ---

type session struct {
	Token string
	User  apiclient.User
}

type sessionKey struct{}

func sessionFrom(ctx context.Context) session {
	s, _ := ctx.Value(sessionKey{}).(session)
	return s
}

// requireSession checks the token cookie against the API. A rejected token
// is cleared and the admin is sent to the login page.
func (h *Handler) requireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		user, err := h.backend.Me(r.Context(), cookie.Value)
		if err != nil {
			if apiclient.IsStatus(err, http.StatusUnauthorized) {
				clearTokenCookie(w)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			h.upstreamError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, session{Token: cookie.Value, User: *user})
		next(w, r.WithContext(ctx))
	})
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/admin",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// --- Helpers ---

// flash is a notice shown above the list.
type flash struct {
	Text    string
	Error   bool
	Details []string
}

// flashKeys are the notices a redirect may ask the list to show.
var flashKeys = map[string]bool{"created": true, "updated": true, "deleted": true}

func withFlash(target, key string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "flash=" + url.QueryEscape(key)
}

// apiMessage is the text shown for a failed API call: the server's own
// message when there is one.
func apiMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func statusOf(err error) int {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func (h *Handler) language(w http.ResponseWriter, r *http.Request) language.Tag {
	tag, persist := i18n.ResolveTag(r, h.fallback)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return tag
}

func (h *Handler) category(w http.ResponseWriter, r *http.Request) (models.Category, bool) {
	c, ok := models.ParseCategory(r.PathValue("category"))
	if !ok {
		http.NotFound(w, r)
	}
	return c, ok
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tag language.Tag, status int, page, title string, body any) {
	data := present.Page{Title: title, AltLangURL: present.AltLangURL(r, tag), Body: body}
	if err := h.pages.Render(w, status, page, tag, data); err != nil {
		h.log.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	tag := h.language(w, r)
	h.log.Error("api request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, i18n.Printer(tag).Sprintf("error.load"), http.StatusBadGateway)
}

// --- Login ---

type loginPage struct {
	Username string
	Error    string
}

func (h *Handler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	tag := h.language(w, r)
	h.render(w, r, tag, http.StatusOK, "login.html", i18n.Printer(tag).Sprintf("login.title"), loginPage{})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	tag := h.language(w, r)
	printer := i18n.Printer(tag)
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	page := loginPage{Username: username}
	if username == "" || password == "" {
		page.Error = printer.Sprintf("login.failed")
		h.render(w, r, tag, http.StatusBadRequest, "login.html", printer.Sprintf("login.title"), page)
		return
	}

	res, err := h.backend.Login(r.Context(), username, password)
	if err != nil {
		status := http.StatusUnauthorized
		page.Error = printer.Sprintf("login.failed")
		if !apiclient.IsStatus(err, http.StatusUnauthorized) {
			h.log.Error("login request failed", zap.Error(err))
			status = http.StatusBadGateway
			page.Error = printer.Sprintf("login.error")
		}
		h.render(w, r, tag, status, "login.html", printer.Sprintf("login.title"), page)
		return
	}

	setTokenCookie(w, res.Token)
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

// HandleLogout only forgets the token; it stays valid until it expires.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w)
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// --- Dashboard ---

type dashboardCard struct {
	Title string
	Icon  string
	Count int64
	URL   string
}

type dashboardPage struct {
	Username string
	Cards    []dashboardCard
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	tag := h.language(w, r)
	summaries, err := h.backend.Categories(r.Context())
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}

	page := dashboardPage{Username: sessionFrom(r.Context()).User.Username}
	for _, s := range summaries {
		c, ok := models.ParseCategory(s.Key)
		if !ok {
			continue
		}
		page.Cards = append(page.Cards, dashboardCard{
			Title: present.CategoryTitle(c, tag),
			Icon:  s.Icon,
			Count: s.Count,
			URL:   PageState{Mode: ModeList}.URL(c),
		})
	}
	h.render(w, r, tag, http.StatusOK, "dashboard.html", i18n.Printer(tag).Sprintf("console.dashboard"), page)
}

// --- Category pages ---

// HandleCategory renders the view selected by the page state in the query.
func (h *Handler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	tag := h.language(w, r)
	state := ParseState(r.URL.Query())

	switch state.Mode {
	case ModeCreate:
		h.renderForm(w, r, tag, c, state, map[string]string{}, nil, http.StatusOK)
	case ModeEdit, ModeDetail:
		rec, err := h.backend.Get(r.Context(), c, state.ID)
		if apiclient.IsStatus(err, http.StatusNotFound) {
			h.renderList(w, r, tag, c, PageState{Mode: ModeList}, &flash{Text: i18n.Printer(tag).Sprintf("error.not_found"), Error: true}, http.StatusNotFound)
			return
		}
		if err != nil {
			h.upstreamError(w, r, err)
			return
		}
		if state.Mode == ModeEdit {
			h.renderForm(w, r, tag, c, state, RecordValues(rec), nil, http.StatusOK)
			return
		}
		h.renderDetail(w, r, tag, c, state, rec)
	default:
		var notice *flash
		if key := r.URL.Query().Get("flash"); flashKeys[key] {
			notice = &flash{Text: i18n.Printer(tag).Sprintf("console." + key)}
		}
		h.renderList(w, r, tag, c, state, notice, http.StatusOK)
	}
}

type listRow struct {
	ID        string
	Name      string
	Fields    []present.FieldView
	UpdatedAt string
	ViewURL   string
	EditURL   string
	DeleteURL string
}

type listPage struct {
	Title      string
	Icon       string
	Count      string
	Empty      string
	Search     present.SearchForm
	Rows       []listRow
	Flash      *flash
	AddURL     string
	ImportURL  string
	ExportURL  string
	BulkAction string
	Importing  bool
	ImportForm importForm
	Confirm    *confirmForm
}

type importForm struct {
	Action   string
	CloseURL string
	Data     string
	Error    string
}

type confirmForm struct {
	Message   string
	Action    string
	IDs       []string
	CancelURL string
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, tag language.Tag, c models.Category, state PageState, notice *flash, status int) {
	h.renderListWith(w, r, tag, c, state, notice, importForm{}, status)
}

func (h *Handler) renderListWith(w http.ResponseWriter, r *http.Request, tag language.Tag, c models.Category, state PageState, notice *flash, imp importForm, status int) {
	records, err := h.backend.List(r.Context(), c)
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}

	printer := i18n.Printer(tag)
	title := present.CategoryTitle(c, tag)
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	filters := present.ParseFilters(r.URL.Query().Get)
	shown := present.ApplyFilters(records, query, filters)
	base := PageState{Mode: ModeList}

	page := listPage{
		Title:      title,
		Icon:       c.Info().Icon,
		Empty:      printer.Sprintf("list.empty", title),
		Search:     present.NewSearchForm(base.URL(c), query, printer.Sprintf("list.search_placeholder", title), present.FilterOptions(records, filters, tag)),
		Flash:      notice,
		AddURL:     base.must(Event{Kind: EventAdd}).URL(c),
		ImportURL:  base.must(Event{Kind: EventOpenImport}).URL(c),
		ExportURL:  "/admin/" + string(c) + "/export",
		BulkAction: "/admin/" + string(c) + "/bulk-delete",
		Importing:  state.Importing,
		ImportForm: imp,
	}
	if query != "" || len(filters) > 0 {
		page.Count = printer.Sprintf("list.count_filtered", len(shown), title)
	} else {
		page.Count = printer.Sprintf("list.count", len(shown), title)
	}
	if state.Importing {
		page.ImportForm.Action = "/admin/" + string(c) + "/import"
		page.ImportForm.CloseURL = state.must(Event{Kind: EventCloseImport}).URL(c)
	}
	if state.Deleting != "" {
		page.Confirm = &confirmForm{
			Message:   printer.Sprintf("console.confirm_delete"),
			Action:    "/admin/" + string(c) + "/" + url.PathEscape(state.Deleting) + "/delete",
			CancelURL: state.must(Event{Kind: EventCancelDelete}).URL(c),
		}
	}

	for _, rec := range shown {
		id := rec.Base().ID
		page.Rows = append(page.Rows, listRow{
			ID:        id,
			Name:      rec.Base().Name,
			Fields:    present.CardFields(rec, tag),
			UpdatedAt: rec.Base().UpdatedAt.Format("2006-01-02 15:04"),
			ViewURL:   base.must(Event{Kind: EventView, ID: id}).URL(c),
			EditURL:   base.must(Event{Kind: EventEdit, ID: id}).URL(c),
			DeleteURL: base.must(Event{Kind: EventAskDelete, ID: id}).URL(c),
		})
	}
	h.render(w, r, tag, status, "list.html", title, page)
}

type formPage struct {
	Heading   string
	Action    string
	CancelURL string
	Fields    []FormField
	Errors    []string
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, tag language.Tag, c models.Category, state PageState, values map[string]string, problems []string, status int) {
	printer := i18n.Printer(tag)
	title := present.CategoryTitle(c, tag)
	page := formPage{
		Heading:   printer.Sprintf("console.create_title", title),
		Action:    "/admin/" + string(c),
		CancelURL: state.must(Event{Kind: EventBack}).URL(c),
		Fields:    FormFields(c, values, tag),
		Errors:    problems,
	}
	if state.Mode == ModeEdit {
		page.Heading = printer.Sprintf("console.edit_title", title)
		page.Action = "/admin/" + string(c) + "/" + url.PathEscape(state.ID)
	}
	h.render(w, r, tag, status, "form.html", page.Heading, page)
}

type detailPage struct {
	Name      string
	ImageURL  string
	Fields    []present.FieldView
	CreatedAt string
	UpdatedAt string
	EditURL   string
	BackURL   string
}

func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, tag language.Tag, c models.Category, state PageState, rec models.Record) {
	base := rec.Base()
	page := detailPage{
		Name:      base.Name,
		Fields:    present.FieldViews(rec, tag),
		CreatedAt: base.CreatedAt.Format(time.DateTime),
		UpdatedAt: base.UpdatedAt.Format(time.DateTime),
		EditURL:   state.must(Event{Kind: EventEdit}).URL(c),
		BackURL:   state.must(Event{Kind: EventBack}).URL(c),
	}
	if base.ImageURL != nil {
		page.ImageURL = *base.ImageURL
	}
	h.render(w, r, tag, http.StatusOK, "detail.html", base.Name, page)
}

// --- Mutations ---

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, PageState{Mode: ModeCreate})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, PageState{Mode: ModeEdit, ID: r.PathValue("id")})
}

// save validates the form, then creates or updates. Any failure keeps the
// form open with the submitted values.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, state PageState) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	tag := h.language(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	values, payload, problems := ParseForm(c, r.PostForm, tag)
	if len(problems) > 0 {
		h.renderForm(w, r, tag, c, state, values, problems, http.StatusBadRequest)
		return
	}

	printer := i18n.Printer(tag)
	token := sessionFrom(r.Context()).Token
	var err error
	notice := "created"
	if state.Mode == ModeEdit {
		notice = "updated"
		_, err = h.backend.Update(r.Context(), token, c, state.ID, payload)
	} else {
		_, err = h.backend.Create(r.Context(), token, c, payload)
	}
	if err != nil {
		msg := printer.Sprintf("console.create_failed", apiMessage(err))
		if state.Mode == ModeEdit {
			msg = printer.Sprintf("console.update_failed", apiMessage(err))
		}
		h.renderForm(w, r, tag, c, state, values, []string{msg}, statusOf(err))
		return
	}

	http.Redirect(w, r, withFlash(state.must(Event{Kind: EventSaved}).URL(c), notice), http.StatusSeeOther)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	tag := h.language(w, r)
	id := r.PathValue("id")

	err := h.backend.Delete(r.Context(), sessionFrom(r.Context()).Token, c, id)
	if err != nil {
		text := i18n.Printer(tag).Sprintf("console.delete_failed", apiMessage(err))
		h.renderList(w, r, tag, c, PageState{Mode: ModeList}, &flash{Text: text, Error: true}, statusOf(err))
		return
	}
	http.Redirect(w, r, withFlash(PageState{Mode: ModeList}.URL(c), "deleted"), http.StatusSeeOther)
}

// HandleBulkDelete asks for confirmation first, then deletes the selected
// ids and reports each failure.
func (h *Handler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	tag := h.language(w, r)
	printer := i18n.Printer(tag)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	list := PageState{Mode: ModeList}

	ids := r.PostForm["id"]
	if len(ids) == 0 {
		h.renderList(w, r, tag, c, list, &flash{Text: printer.Sprintf("console.select_first"), Error: true}, http.StatusBadRequest)
		return
	}

	if r.PostFormValue("confirm") != "1" {
		confirm := confirmForm{
			Message:   printer.Sprintf("console.confirm_bulk", len(ids)),
			Action:    "/admin/" + string(c) + "/bulk-delete",
			IDs:       ids,
			CancelURL: list.URL(c),
		}
		h.render(w, r, tag, http.StatusOK, "confirm.html", printer.Sprintf("console.bulk_delete"), confirm)
		return
	}

	results := BulkDelete(r.Context(), h.backend, sessionFrom(r.Context()).Token, c, ids)
	failed := Failures(results)
	notice := &flash{Text: printer.Sprintf("console.bulk_deleted", len(results))}
	if len(failed) > 0 {
		notice = &flash{
			Text:    printer.Sprintf("console.bulk_partial", len(results)-len(failed), len(failed)),
			Error:   true,
			Details: h.failureDetails(printer, failed),
		}
	}
	h.renderList(w, r, tag, c, list, notice, http.StatusOK)
}

// HandleImport rejects anything but a JSON array before calling the API,
// then creates one record per element.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	tag := h.language(w, r)
	printer := i18n.Printer(tag)
	data := r.PostFormValue("data")

	items, err := ParseImport(data)
	if err != nil {
		imp := importForm{Data: data, Error: printer.Sprintf("console.import_format")}
		h.renderListWith(w, r, tag, c, PageState{Mode: ModeList, Importing: true}, nil, imp, http.StatusBadRequest)
		return
	}

	results := Import(r.Context(), h.backend, sessionFrom(r.Context()).Token, c, items)
	failed := Failures(results)
	notice := &flash{Text: printer.Sprintf("console.imported", len(results))}
	if len(failed) > 0 {
		notice = &flash{
			Text:    printer.Sprintf("console.import_partial", len(results)-len(failed), len(failed)),
			Error:   true,
			Details: h.failureDetails(printer, failed),
		}
	}
	h.renderList(w, r, tag, c, PageState{Mode: ModeList}, notice, http.StatusOK)
}

func (h *Handler) failureDetails(printer *message.Printer, failed []ItemResult) []string {
	details := make([]string, len(failed))
	for i, res := range failed {
		h.log.Warn("bulk item failed", zap.Int("index", res.Index), zap.String("id", res.ID), zap.Error(res.Err))
		details[i] = printer.Sprintf("console.item_failed", res.Index+1, apiMessage(res.Err))
	}
	return details
}

// HandleExport downloads the full loaded set, ignoring any search or filter.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	c, ok := h.category(w, r)
	if !ok {
		return
	}
	records, err := h.backend.List(r.Context(), c)
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}

	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		h.log.Error("failed to encode export", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-export.json"`, c))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
