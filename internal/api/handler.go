package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexivanou/places-api/internal/ingest"
	"github.com/alexivanou/places-api/internal/model"
	"github.com/alexivanou/places-api/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	uploadField        = "file"
	defaultMaxUpload   = 32 << 20
	msgNoFile          = "Please upload a CSV file."
	msgProcessFailed   = "Failed to process data"
	msgNoPlaces        = "No places found"
	msgPlaceNotFound   = "Place not found"
	msgInternalError   = "internal server error"
	msgPlaceDeleted    = "Place deleted"
	multipartMemoryCap = 8 << 20
)

// Handler handles HTTP requests
type Handler struct {
	service        service.ServiceInterface
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUpload
	}
	return &Handler{service: service, logger: logger, maxUploadBytes: maxUploadBytes}
}

// UploadPlaces handles POST /api/v1/places
func (h *Handler) UploadPlaces(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemoryCap); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
			return
		}
		h.writeError(w, http.StatusBadRequest, msgNoFile)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, msgNoFile)
		return
	}
	defer file.Close()

	report, err := h.service.ImportPlaces(r.Context(), file)
	if err != nil {
		if ingest.IsClientError(err) {
			h.logger.Info("Rejected upload", zap.Error(err))
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Error processing upload", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgProcessFailed)
		return
	}

	h.writeJSON(w, http.StatusCreated, report)
}

// ListPlaces handles GET /api/v1/places
func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.PlaceFilter{
		Country: q.Get("country"),
		Tag:     q.Get("tag"),
	}

	var ok bool
	if filter.Limit, ok = intParam(q.Get("limit")); !ok {
		h.writeError(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}
	if filter.Offset, ok = intParam(q.Get("offset")); !ok {
		h.writeError(w, http.StatusBadRequest, "invalid offset parameter")
		return
	}

	places, err := h.service.ListPlaces(r.Context(), filter)
	if err != nil {
		h.logger.Error("Error listing places", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if len(places) == 0 {
		h.writeError(w, http.StatusNotFound, msgNoPlaces)
		return
	}

	h.writeJSON(w, http.StatusOK, model.PlaceListResponse{Places: places})
}

// GetPlace handles GET /api/v1/places/{code}
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	place, err := h.service.GetPlace(r.Context(), code)
	if err != nil {
		h.logger.Error("Error getting place", zap.String("code", code), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if place == nil {
		h.writeError(w, http.StatusNotFound, msgPlaceNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, place)
}

// DeletePlace handles DELETE /api/v1/places/{code}
func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	deleted, err := h.service.DeletePlace(r.Context(), code)
	if err != nil {
		h.logger.Error("Error deleting place", zap.String("code", code), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if !deleted {
		h.writeError(w, http.StatusNotFound, msgPlaceNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": msgPlaceDeleted, "code": code})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// intParam parses an optional non-negative integer query parameter
func intParam(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
