package payrollhandler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/domain/payroll"
	"hrmsconsole/internal/domain/upsert"
	"hrmsconsole/internal/platform/money"
	"hrmsconsole/internal/transport/http/api"
	"hrmsconsole/internal/transport/http/middleware"
	"hrmsconsole/internal/transport/http/shared"
)

type Handler struct {
	Payroll   *payroll.Service
	Employees *employee.Service
	Now       func() time.Time
}

func NewHandler(payrollSvc *payroll.Service, employees *employee.Service) *Handler {
	return &Handler{Payroll: payrollSvc, Employees: employees, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/", h.handleSheet)
		r.Get("/preview", h.handlePreview)
		r.Get("/export.pdf", h.handleExport)
		r.Put("/employees/{employeeID}", h.handleSave)
		r.Put("/{recordID}", h.handleEdit)
		r.Delete("/{recordID}", h.handleDelete)
	})
}

type sheetView struct {
	Rows     []payroll.Row         `json:"rows"`
	Register []payroll.RegisterRow `json:"register"`
	Total    money.Amount          `json:"total"`
}

type draftPayload struct {
	EmployeeID int64       `json:"employeeId"`
	BasicPay   shared.Text `json:"basicPay"`
	Bonus      shared.Text `json:"bonus"`
	Deductions shared.Text `json:"deductions"`
	UseSalary  bool        `json:"useSalary"`
}

func (p draftPayload) draft(employeeID int64) payroll.Draft {
	return payroll.Draft{
		EmployeeID: employeeID,
		BasicPay:   p.BasicPay.String(),
		Bonus:      p.Bonus.String(),
		Deductions: p.Deductions.String(),
	}
}

func (h *Handler) loadSheet(r *http.Request) (payroll.Sheet, []string) {
	var warnings []string
	employees, err := h.Employees.List(r.Context())
	if err != nil {
		warnings = append(warnings, err.Error())
		employees = nil
	}
	sheet, err := h.Payroll.Sheet(r.Context(), employees)
	if err != nil {
		warnings = append(warnings, err.Error())
		sheet = payroll.Reduce(payroll.Sheet{}, payroll.Loaded{Employees: employees})
	}
	return sheet, warnings
}

func (h *Handler) handleSheet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sheet, warnings := h.loadSheet(r)
	view := sheetView{Rows: sheet.Rows(), Register: sheet.Register(), Total: sheet.Total()}
	if len(warnings) > 0 {
		api.Degraded(w, view, strings.Join(warnings, "; "), requestID)
		return
	}
	api.Success(w, view, requestID)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	netSalary := payroll.ComputeNetSalary(q.Get("basicPay"), q.Get("bonus"), q.Get("deductions"))
	api.Success(w, map[string]money.Amount{"netSalary": netSalary}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	var payload draftPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	draft := payload.draft(employeeID)
	if payload.UseSalary {
		emp, err := h.Employees.Get(r.Context(), employeeID)
		if err != nil {
			api.FailFromError(w, err, requestID)
			return
		}
		if draft, err = payroll.ApplySalary(draft, emp); err != nil {
			api.FailFromError(w, err, requestID)
			return
		}
	}
	out, err := h.Payroll.Save(r.Context(), draft)
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	status := http.StatusOK
	if out.Action == upsert.ActionCreated {
		status = http.StatusCreated
	}
	api.Done(w, status, out, out.Message, requestID)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "recordID")
	if !ok {
		return
	}
	var payload draftPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	out, err := h.Payroll.Edit(r.Context(), id, payload.draft(payload.EmployeeID))
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	api.Done(w, http.StatusOK, out, out.Message, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "recordID")
	if !ok {
		return
	}
	out, err := h.Payroll.Delete(r.Context(), id)
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	api.Done(w, http.StatusOK, map[string]int64{"id": id}, out.Message, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Employees.List(r.Context())
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	sheet, err := h.Payroll.Sheet(r.Context(), employees)
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	var buf bytes.Buffer
	if err := payroll.WritePDF(&buf, sheet, h.Now()); err != nil {
		slog.Warn("payroll register export failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export payroll register", requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payroll-register.pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("payroll register write failed", "requestId", requestID, "err", err)
	}
}
