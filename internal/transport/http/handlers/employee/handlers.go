package employeehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/transport/http/api"
	"hrmsconsole/internal/transport/http/middleware"
	"hrmsconsole/internal/transport/http/shared"
)

type Handler struct {
	Service     *employee.Service
	Idempotency *middleware.IdempotencyStore
}

func NewHandler(service *employee.Service, idempotency *middleware.IdempotencyStore) *Handler {
	return &Handler{Service: service, Idempotency: idempotency}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.Idempotent(h.Idempotency)).Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

type employeePayload struct {
	Name        string      `json:"name"`
	Designation string      `json:"designation"`
	Department  string      `json:"department"`
	Salary      shared.Text `json:"salary"`
}

func (p employeePayload) input() employee.Input {
	return employee.Input{
		Name:        p.Name,
		Designation: p.Designation,
		Department:  p.Department,
		Salary:      p.Salary.String(),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.List(r.Context())
	if err != nil {
		api.Degraded(w, []employee.Employee{}, err.Error(), requestID)
		return
	}
	api.Success(w, shared.Page(employees, shared.ParsePagination(r, 500)), requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	emp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		api.FailFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	out, err := h.Service.Create(r.Context(), payload.input())
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	api.Done(w, http.StatusCreated, out.Record, out.Message, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	var payload employeePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	out, err := h.Service.Update(r.Context(), id, payload.input())
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	api.Done(w, http.StatusOK, out.Record, out.Message, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	out, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	api.Done(w, http.StatusOK, map[string]int64{"id": id}, out.Message, requestID)
}
