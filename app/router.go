// Package app assembles the HTTP surface: the JSON API, the admin console
// and the public site on one mux.
package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/apiclient"
	"github.com/xiuxian-wiki/encyclopedia/app/catalog"
	"github.com/xiuxian-wiki/encyclopedia/app/categories"
	"github.com/xiuxian-wiki/encyclopedia/app/health"
	"github.com/xiuxian-wiki/encyclopedia/app/middleware"
	"github.com/xiuxian-wiki/encyclopedia/app/records"
	"github.com/xiuxian-wiki/encyclopedia/app/session"
	"github.com/xiuxian-wiki/encyclopedia/auth"
	"github.com/xiuxian-wiki/encyclopedia/console"
	"github.com/xiuxian-wiki/encyclopedia/models"
	"github.com/xiuxian-wiki/encyclopedia/web"
)

type Deps struct {
	Records *models.RecordsRepository
	Users   *models.UsersRepository
	Tokens  *auth.Tokens
	DB      health.Pinger
	Metrics *middleware.Metrics
	// API is the client the console and the public site read through.
	API         *apiclient.Client
	DefaultLang language.Tag
	Log         *zap.Logger
}

func NewRouter(d Deps) (http.Handler, error) {
	mux := http.NewServeMux()
	authn := auth.NewAuthenticator(d.Tokens, d.Users, d.Log)

	for _, c := range models.Categories {
		records.NewRecordHandler(c, c.RequiredFields(), d.Records, authn, d.Log).Register(mux)
	}
	catalog.NewCatalogHandler(d.Records, d.Log).Register(mux)
	mux.HandleFunc("GET /api/categories", categories.NewCategoryHandler(d.Records, d.Log).HandleGetAll)

	sessions := session.NewSessionHandler(d.Users, d.Tokens, d.Log)
	mux.HandleFunc("POST /api/auth/login", sessions.HandleLogin)
	mux.Handle("GET /api/auth/me", authn.Middleware(http.HandlerFunc(sessions.HandleMe)))
	mux.HandleFunc("GET /api/health", health.NewHealthHandler(d.DB, d.Log).HandleGet)
	mux.Handle("GET /metrics", d.Metrics.Handler())

	admin, err := console.NewHandler(d.API, d.DefaultLang, d.Log.Named("console"))
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	admin.Register(mux)

	site, err := web.NewHandler(d.API, d.DefaultLang, d.Log.Named("web"))
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	site.Register(mux)

	return middleware.Chain(mux, middleware.Logger(d.Log), d.Metrics.Instrument), nil
}
