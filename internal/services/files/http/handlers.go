// Package http provides http transport for the files service
package http

import (
	stdhttp "net/http"
	"time"

	"solna/internal/modkit/httpkit"
	"solna/internal/platform/logger"
	"solna/internal/services/files/domain"
)

// Deps are the ports the handlers call
type Deps struct {
	Ingest domain.IngestPort
	Query  domain.QueryPort
	Health domain.HealthPort
}

// Register mounts the files endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	// watcher notifications
	httpkit.PostJSON[domain.ChangeNotification](r, "/file-changed", h.fileChanged)

	httpkit.Get(r, "/photos", h.photos)

	// pool status, served bare for probes
	httpkit.GetResponse(r, "/", h.status)
}

type handlers struct{ deps Deps }

//
// Swagger DTOs and route docs
//

// IngestedResponse echoes the persisted record
type IngestedResponse struct {
	ID         string    `json:"id"          example:"0b6f5c1e-3a4d-4a5e-9a40-0f3c2f1df3aa"`
	File       string    `json:"file"        example:"/home/foo/upload/motion/cam1.jpg"`
	Event      string    `json:"event"       example:"motion"`
	ChangeType string    `json:"change_type" example:"CREATE"`
	Timestamp  time.Time `json:"timestamp"   example:"2026-10-14T08:30:00Z"`
}

// PhotoResponse is one listed record
type PhotoResponse struct {
	ID        string    `json:"id"         example:"0b6f5c1e-3a4d-4a5e-9a40-0f3c2f1df3aa"`
	Filename  string    `json:"filename"   example:"/home/foo/upload/motion/cam1.jpg"`
	EventType string    `json:"event_type" example:"motion"`
	Timestamp time.Time `json:"timestamp"  example:"2026-10-14T08:30:00Z"`
}

// PoolResponse is the pool part of StatusResponse
type PoolResponse struct {
	TotalConnections int `json:"total_connections" example:"10"`
	IdleConnections  int `json:"idle_connections"  example:"9"`
	WaitingRequests  int `json:"waiting_requests"  example:"0"`
}

// StatusResponse is the root probe payload
type StatusResponse struct {
	Status   string        `json:"status"          example:"healthy"`   // healthy degraded unhealthy
	Database string        `json:"database"        example:"connected"` // connected disconnected
	Pool     *PoolResponse `json:"pool,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// swagger:route POST /file-changed Files filesChanged
// @Summary Ingest a file change notification
// @Tags Files
// @Accept json
// @Produce json
// @Param payload body domain.ChangeNotification true "Notification"
// @Success 200 {object} IngestedResponse "persisted"
// @Router /file-changed [post]
func (h *handlers) fileChanged(r *stdhttp.Request, in domain.ChangeNotification) (any, error) {
	out, err := h.deps.Ingest.Ingest(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return IngestedResponse{
		ID:         out.Record.ID.String(),
		File:       out.Record.Path,
		Event:      out.Record.Event,
		ChangeType: out.ChangeType,
		Timestamp:  out.Record.CreatedAt,
	}, nil
}

// swagger:route GET /photos Files filesPhotos
// @Summary List persisted file records newest first
// @Tags Files
// @Produce json
// @Success 200 {array} PhotoResponse "ok"
// @Router /photos [get]
func (h *handlers) photos(r *stdhttp.Request) (any, error) {
	recs, err := h.deps.Query.List(r.Context())
	if err != nil {
		return nil, err
	}
	out := make([]PhotoResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, PhotoResponse{
			ID:        rec.ID.String(),
			Filename:  rec.Path,
			EventType: rec.Event,
			Timestamp: rec.CreatedAt,
		})
	}
	return out, nil
}

// swagger:route GET / Files filesStatus
// @Summary Pool status and database connectivity
// @Tags Files
// @Produce json
// @Success 200 {object} StatusResponse "healthy"
// @Failure 503 {object} StatusResponse "unhealthy"
// @Router / [get]
func (h *handlers) status(r *stdhttp.Request) httpkit.Response {
	ps, err := h.deps.Health.PoolStatus()
	if err != nil {
		logger.C(r.Context()).Warn().Err(err).Msg("pool status unavailable")
		return httpkit.Raw(stdhttp.StatusServiceUnavailable, StatusResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
	}

	status, db := "degraded", "disconnected"
	if h.deps.Health.TestConnectivity(r.Context()) {
		status, db = "healthy", "connected"
	}
	return httpkit.Raw(stdhttp.StatusOK, StatusResponse{
		Status:   status,
		Database: db,
		Pool: &PoolResponse{
			TotalConnections: ps.TotalConnections,
			IdleConnections:  ps.IdleConnections,
			WaitingRequests:  ps.WaitingRequests,
		},
	})
}
