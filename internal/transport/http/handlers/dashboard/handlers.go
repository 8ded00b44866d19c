package dashboardhandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrmsconsole/internal/domain/dashboard"
	"hrmsconsole/internal/platform/jobs"
	"hrmsconsole/internal/transport/http/api"
	"hrmsconsole/internal/transport/http/middleware"
)

const msgRefreshed = "Dashboard refreshed"

type Handler struct {
	Refresher *dashboard.Refresher
	Jobs      *jobs.Service
}

func NewHandler(refresher *dashboard.Refresher, queue *jobs.Service) *Handler {
	return &Handler{Refresher: refresher, Jobs: queue}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Post("/refresh", h.handleRefresh)
	})
}

type view struct {
	Summary  dashboard.Summary `json:"summary"`
	Cards    []dashboard.Card  `json:"cards"`
	Revision uint64            `json:"revision"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	summary, ok := h.Refresher.Latest()
	if !ok {
		var err error
		if summary, err = h.Refresher.Refresh(r.Context()); err != nil {
			api.FailFromError(w, err, requestID)
			return
		}
	}
	h.write(w, summary, "", requestID)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	summary, err := h.Refresher.RefreshNow(r.Context(), h.Jobs)
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	h.write(w, summary, msgRefreshed, requestID)
}

func (h *Handler) write(w http.ResponseWriter, summary dashboard.Summary, message, requestID string) {
	data := view{Summary: summary, Cards: summary.Cards(), Revision: h.Refresher.Revision()}
	if summary.Degraded() {
		api.Degraded(w, data, "Some dashboard data could not be loaded: "+strings.Join(summary.Failures, ", "), requestID)
		return
	}
	api.Done(w, http.StatusOK, data, message, requestID)
}
