package categories

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xiuxian-wiki/encyclopedia/app/respond"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

type CategoryResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	ChineseName string `json:"chineseName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Count       int64  `json:"count"`
}

type CategoryProvider interface {
	Count(ctx context.Context, c models.Category) (int64, error)
}

type CategoryHandler struct {
	repo CategoryProvider
	log  *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, log: log}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	response := make([]CategoryResponse, len(models.Categories))

	g, ctx := errgroup.WithContext(r.Context())
	for i, c := range models.Categories {
		info := c.Info()
		response[i] = CategoryResponse{
			Key:         string(c),
			Name:        info.Name,
			ChineseName: info.ChineseName,
			Description: info.Description,
			Icon:        info.Icon,
		}
		g.Go(func() error {
			count, err := h.repo.Count(ctx, c)
			if err != nil {
				return err
			}
			response[i].Count = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.log.Error("failed to count records", zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	respond.JSON(w, http.StatusOK, response)
}
