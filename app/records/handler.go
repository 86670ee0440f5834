package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/app/respond"
	"github.com/xiuxian-wiki/encyclopedia/apperr"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

const maxBodyBytes = 1 << 20

type RecordProvider interface {
	GetAll(ctx context.Context, c models.Category) ([]models.Record, error)
	GetByID(ctx context.Context, c models.Category, id string) (models.Record, error)
	Create(ctx context.Context, c models.Category, rec models.Record) error
	Update(ctx context.Context, c models.Category, id string, apply func(models.Record) error) (models.Record, error)
	Delete(ctx context.Context, c models.Category, id string) error
}

type Authenticator interface {
	RequireAuth(r *http.Request) (*models.User, error)
}

// RecordHandler serves the five CRUD routes of one category.
type RecordHandler struct {
	category models.Category
	required []string
	repo     RecordProvider
	auth     Authenticator
	log      *zap.Logger
}

func NewRecordHandler(category models.Category, required []string, repo RecordProvider, auth Authenticator, log *zap.Logger) *RecordHandler {
	return &RecordHandler{
		category: category,
		required: required,
		repo:     repo,
		auth:     auth,
		log:      log.With(zap.String("category", string(category))),
	}
}

// Register mounts the handler under /api/{category}.
func (h *RecordHandler) Register(mux *http.ServeMux) {
	base := "/api/" + string(h.category)
	mux.HandleFunc("GET "+base, h.HandleList)
	mux.HandleFunc("POST "+base, h.HandleCreate)
	mux.HandleFunc("GET "+base+"/{id}", h.HandleGet)
	mux.HandleFunc("PUT "+base+"/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE "+base+"/{id}", h.HandleDelete)
}

func (h *RecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.GetAll(r.Context(), h.category)
	if err != nil {
		h.fail(w, err, "list records")
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	respond.JSON(w, http.StatusOK, records)
}

func (h *RecordHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if _, err := h.auth.RequireAuth(r); err != nil {
		h.fail(w, err, "authenticate")
		return
	}

	body, fields, err := readObject(w, r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// Validate required fields
	for _, field := range h.required {
		if isBlank(fields[field]) {
			h.fail(w, apperr.MissingField(field), "validate record")
			return
		}
	}
	if err := h.checkNumbers(fields); err != nil {
		h.fail(w, err, "validate record")
		return
	}

	rec := h.category.New()
	if err := json.Unmarshal(body, rec); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	base := rec.Base()
	base.ID = ""
	base.CreatedAt = time.Time{}
	base.UpdatedAt = time.Time{}

	if err := h.repo.Create(r.Context(), h.category, rec); err != nil {
		h.fail(w, err, "create record")
		return
	}

	respond.JSON(w, http.StatusCreated, rec)
}

func (h *RecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.repo.GetByID(r.Context(), h.category, r.PathValue("id"))
	if err != nil {
		h.fail(w, err, "get record")
		return
	}
	respond.JSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, err := h.auth.RequireAuth(r); err != nil {
		h.fail(w, err, "authenticate")
		return
	}

	body, fields, err := readObject(w, r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.checkNumbers(fields); err != nil {
		h.fail(w, err, "validate record")
		return
	}

	rec, err := h.repo.Update(r.Context(), h.category, r.PathValue("id"), func(rec models.Record) error {
		if err := json.Unmarshal(body, rec); err != nil {
			return apperr.New(apperr.CodeValidation, "Invalid JSON body")
		}
		return nil
	})
	if err != nil {
		h.fail(w, err, "update record")
		return
	}

	respond.JSON(w, http.StatusOK, rec)
}

func (h *RecordHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.auth.RequireAuth(r); err != nil {
		h.fail(w, err, "authenticate")
		return
	}

	if err := h.repo.Delete(r.Context(), h.category, r.PathValue("id")); err != nil {
		h.fail(w, err, "delete record")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *RecordHandler) fail(w http.ResponseWriter, err error, msg string) {
	var fieldErr *models.FieldError
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		err = apperr.New(apperr.CodeNotFound, string(h.category)+" not found")
	case errors.As(err, &fieldErr):
		err = apperr.Wrap(apperr.CodeValidation, fieldErr.Message, fieldErr)
	}
	respond.Error(w, h.log, err, msg)
}

// readObject reads the request body and requires it to be a JSON object.
func readObject(w http.ResponseWriter, r *http.Request) ([]byte, map[string]json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, nil, err
	}
	if fields == nil {
		return nil, nil, errors.New("body is not an object")
	}
	return body, fields, nil
}

// checkNumbers rejects number fields whose JSON value is not an integer.
// null leaves the field unset.
func (h *RecordHandler) checkNumbers(fields map[string]json.RawMessage) error {
	for _, f := range h.category.Fields() {
		raw, ok := fields[f.Key]
		if f.Kind != models.KindNumber || !ok {
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return &models.FieldError{Field: f.Key, Message: fmt.Sprintf("Invalid %s: must be a number", f.Key)}
		}
		switch v := value.(type) {
		case nil:
		case float64:
			if v != math.Trunc(v) {
				return &models.FieldError{Field: f.Key, Message: fmt.Sprintf("Invalid %s: must be an integer", f.Key)}
			}
		default:
			return &models.FieldError{Field: f.Key, Message: fmt.Sprintf("Invalid %s: must be a number", f.Key)}
		}
	}
	return nil
}

// isBlank reports whether a required value is absent, null, blank, zero or false.
func isBlank(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return true
	}
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case float64:
		return v == 0
	case bool:
		return !v
	}
	return false
}
