package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
)

type ContentHandler struct {
	content ContentService
}

func NewContentHandler(content ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

type AnnouncementRequestDTO struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required"`
	Link        string    `json:"link" validate:"omitempty,url"`
	Active      bool      `json:"active"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (d AnnouncementRequestDTO) toDomain(id string) *domain.Announcement {
	return &domain.Announcement{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Link:        d.Link,
		Active:      d.Active,
		PublishedAt: d.PublishedAt,
	}
}

type EventRequestDTO struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Location    string     `json:"location" validate:"required"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	Featured    bool       `json:"featured"`
	ImageURL    string     `json:"imageUrl" validate:"omitempty,url"`
}

func (d EventRequestDTO) toDomain(id string) *domain.Event {
	return &domain.Event{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		StartsAt:    d.StartsAt,
		EndsAt:      d.EndsAt,
		Featured:    d.Featured,
		ImageURL:    d.ImageURL,
	}
}

// GET /api/v1/announcements
func (h *ContentHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	h.listAnnouncements(w, r, true)
}

// GET /api/v1/admin/announcements
func (h *ContentHandler) ListAllAnnouncements(w http.ResponseWriter, r *http.Request) {
	h.listAnnouncements(w, r, false)
}

func (h *ContentHandler) listAnnouncements(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	items, err := h.content.ListAnnouncements(r.Context(), activeOnly)
	if err != nil {
		handleServiceError(w, r, err, "failed to load announcements")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// POST /api/v1/admin/announcements
func (h *ContentHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req AnnouncementRequestDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}
	a := req.toDomain("")
	if err := h.content.CreateAnnouncement(r.Context(), a); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// PUT /api/v1/admin/announcements/{id}
func (h *ContentHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req AnnouncementRequestDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}
	a := req.toDomain(chi.URLParam(r, "id"))
	if err := h.content.UpdateAnnouncement(r.Context(), a); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// DELETE /api/v1/admin/announcements/{id}
func (h *ContentHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/events
func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.content.ListEvents(r.Context())
	if err != nil {
		handleServiceError(w, r, err, "failed to load events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// POST /api/v1/admin/events
func (h *ContentHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequestDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}
	e := req.toDomain("")
	if err := h.content.CreateEvent(r.Context(), e); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

// PUT /api/v1/admin/events/{id}
func (h *ContentHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequestDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}
	e := req.toDomain(chi.URLParam(r, "id"))
	if err := h.content.UpdateEvent(r.Context(), e); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// DELETE /api/v1/admin/events/{id}
func (h *ContentHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	if err := validateRequest(dst); err != nil {
		handleServiceError(w, r, err, "")
		return false
	}
	return true
}
