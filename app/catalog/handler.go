package catalog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/app/respond"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

type Response struct {
	Total int             `json:"total"`
	Items []models.Record `json:"items"`
}

type RecordSearcher interface {
	SearchPage(ctx context.Context, c models.Category, filters models.RecordFilters, offset, limit int) ([]models.Record, int64, error)
}

type CatalogHandler struct {
	repo RecordSearcher
	log  *zap.Logger
}

func NewCatalogHandler(r RecordSearcher, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  log,
	}
}

// Register mounts GET /api/{category}/search for every category. The
// literal segment takes precedence over the /{id} route.
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	for _, c := range models.Categories {
		mux.HandleFunc("GET /api/"+string(c)+"/search", h.HandleSearch(c))
	}
}

func (h *CatalogHandler) HandleSearch(c models.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		// Parse pagination query params
		offset := 0
		limit := 10

		if oStr := query.Get("offset"); oStr != "" {
			if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
				offset = o
			}
		}

		if lStr := query.Get("limit"); lStr != "" {
			if l, err := strconv.Atoi(lStr); err == nil {
				if l < 1 {
					limit = 1
				} else if l > 100 {
					limit = 100
				} else {
					limit = l
				}
			}
		}

		// Parse filters
		filters := models.RecordFilters{
			Query:  strings.TrimSpace(query.Get("q")),
			Badges: map[string]string{},
		}
		for _, f := range c.Fields() {
			if f.Kind != models.KindBadge {
				continue
			}
			if v := strings.TrimSpace(query.Get(f.Key)); v != "" {
				filters.Badges[f.Key] = v
			}
		}

		res, total, err := h.repo.SearchPage(r.Context(), c, filters, offset, limit)
		if err != nil {
			h.log.Error("failed to search records", zap.String("category", string(c)), zap.Error(err))
			respond.Message(w, http.StatusInternalServerError, "failed to search records")
			return
		}
		if res == nil {
			res = []models.Record{}
		}

		respond.JSON(w, http.StatusOK, Response{
			Total: int(total),
			Items: res,
		})
	}
}
