package videography

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/pkg/query"
	"github.com/imc/imc-api/internal/pkg/response"
	"github.com/imc/imc-api/internal/pkg/validator"
)

// Request is the create/update payload for a project
type Request struct {
	ProjectName   string  `json:"project_name" validate:"required,min=2,max=200"`
	ClientName    string  `json:"client_name" validate:"required,min=2,max=200"`
	Editor        string  `json:"editor" validate:"omitempty,max=200"`
	ShootDate     string  `json:"shoot_date" validate:"required,isodate"`
	StartTime     string  `json:"start_time" validate:"required,hhmm"`
	DurationHours float64 `json:"duration_hours" validate:"required,gte=0.5,lte=24"`
	Package       string  `json:"package" validate:"required,max=100"`
	Price         float64 `json:"price" validate:"gte=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,payment_method"`
}

// Response represents a project in API responses
type Response struct {
	ID            uuid.UUID `json:"id"`
	ProjectName   string    `json:"project_name"`
	ClientName    string    `json:"client_name"`
	Editor        string    `json:"editor,omitempty"`
	ShootDate     string    `json:"shoot_date"`
	StartTime     string    `json:"start_time"`
	DurationHours float64   `json:"duration_hours"`
	Package       string    `json:"package"`
	Price         float64   `json:"price"`
	PaymentMethod string    `json:"payment_method"`
}

// NewResponse maps a Project entity to its API shape
func NewResponse(p *Project) Response {
	return Response{
		ID:            p.ID,
		ProjectName:   p.ProjectName,
		ClientName:    p.ClientName,
		Editor:        p.Editor.String,
		ShootDate:     p.ShootDate.Format("2006-01-02"),
		StartTime:     p.StartTime,
		DurationHours: p.DurationHours,
		Package:       p.Package,
		Price:         p.Price,
		PaymentMethod: p.PaymentMethod,
	}
}

// Handler handles videography HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates videography handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /videography
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := query.ParsePagination(q)

	projects, total, err := h.repo.List(r.Context(), q.Get("search"), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list videography projects")
		response.InternalError(w)
		return
	}

	items := make([]Response, 0, len(projects))
	for _, pr := range projects {
		items = append(items, NewResponse(pr))
	}
	response.WithMeta(w, items, response.NewMeta(total, p.Page, p.Limit))
}

// Stats handles GET /videography/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to compute videography stats")
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}

// Get handles GET /videography/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Videography project not found")
		return
	}
	response.OK(w, NewResponse(p))
}

// Create handles POST /videography
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	date, _ := time.Parse("2006-01-02", req.ShootDate)
	now := time.Now()
	p := &Project{
		ID:            uuid.New(),
		ProjectName:   req.ProjectName,
		ClientName:    req.ClientName,
		ShootDate:     date,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		Package:       req.Package,
		Price:         req.Price,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Editor != "" {
		p.Editor = sql.NullString{String: req.Editor, Valid: true}
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("failed to create videography project")
		response.InternalError(w)
		return
	}
	response.Created(w, NewResponse(p))
}

// Update handles PUT /videography/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	var req Request
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Videography project not found")
		return
	}

	date, _ := time.Parse("2006-01-02", req.ShootDate)
	p.ProjectName = req.ProjectName
	p.ClientName = req.ClientName
	p.Editor = sql.NullString{String: req.Editor, Valid: req.Editor != ""}
	p.ShootDate = date
	p.StartTime = req.StartTime
	p.DurationHours = req.DurationHours
	p.Package = req.Package
	p.Price = req.Price
	p.PaymentMethod = req.PaymentMethod

	if err := h.repo.Update(r.Context(), p); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to update videography project")
		response.InternalError(w)
		return
	}
	response.OK(w, NewResponse(p))
}

// Delete handles DELETE /videography/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrNotFound:
			response.NotFound(w, "Videography project not found")
		default:
			log.Error().Err(err).Str("id", id.String()).Msg("failed to delete videography project")
			response.InternalError(w)
		}
		return
	}
	response.NoContent(w)
}
