package attendancehandler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrmsconsole/internal/domain/attendance"
	"hrmsconsole/internal/domain/employee"
	"hrmsconsole/internal/domain/upsert"
	"hrmsconsole/internal/transport/http/api"
	"hrmsconsole/internal/transport/http/middleware"
	"hrmsconsole/internal/transport/http/shared"
)

type Handler struct {
	Attendance *attendance.Service
	Employees  *employee.Service
	Now        func() time.Time
}

func NewHandler(attendanceSvc *attendance.Service, employees *employee.Service) *Handler {
	return &Handler{Attendance: attendanceSvc, Employees: employees, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleSheet)
		r.Get("/records", h.handleRecords)
		r.Get("/slots", h.handleSlots)
		r.Delete("/records/{recordID}", h.handleDelete)
		r.Put("/{date}/employees/{employeeID}", h.handleMark)
		r.Get("/{date}/export.xlsx", h.handleExport)
	})
}

type sheetView struct {
	Date         string                 `json:"date"`
	PresentCount int                    `json:"presentCount"`
	Rows         []attendance.Row       `json:"rows"`
	Records      []attendance.DayRecord `json:"records"`
	Slots        []attendance.Preset    `json:"slots"`
}

type markPayload struct {
	Status   attendance.Status   `json:"status"`
	TimeSlot attendance.TimeSlot `json:"timeSlot"`
	CheckIn  string              `json:"checkIn"`
	CheckOut string              `json:"checkOut"`
}

func (p markPayload) mark(date string, employeeID int64) (attendance.Mark, error) {
	return attendance.Compose(attendance.Form{
		EmployeeID: employeeID,
		Date:       date,
		Status:     p.Status,
		TimeSlot:   p.TimeSlot,
		CheckIn:    p.CheckIn,
		CheckOut:   p.CheckOut,
	})
}

func (h *Handler) today() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handler) loadSheet(r *http.Request, date string) (attendance.Sheet, []string) {
	var warnings []string
	employees, err := h.Employees.List(r.Context())
	if err != nil {
		warnings = append(warnings, err.Error())
		employees = nil
	}
	sheet, err := h.Attendance.Sheet(r.Context(), date, employees)
	if err != nil {
		warnings = append(warnings, err.Error())
		sheet = attendance.Reduce(attendance.Sheet{}, attendance.Loaded{Date: date, Employees: employees})
	}
	return sheet, warnings
}

func (h *Handler) handleSheet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	date, ok := shared.Day(r.URL.Query().Get("date"), h.today())
	if !ok {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "date must be YYYY-MM-DD", requestID)
		return
	}
	sheet, warnings := h.loadSheet(r, date)
	view := sheetView{
		Date:         sheet.Date,
		PresentCount: sheet.PresentCount(),
		Rows:         sheet.Rows(),
		Records:      sheet.DayRecords(),
		Slots:        attendance.Presets(),
	}
	if len(warnings) > 0 {
		api.Degraded(w, view, strings.Join(warnings, "; "), requestID)
		return
	}
	api.Success(w, view, requestID)
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var (
		records []attendance.Record
		err     error
	)
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, ok := shared.Day(raw, h.today())
		if !ok {
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "date must be YYYY-MM-DD", requestID)
			return
		}
		records, err = h.Attendance.ListForDate(r.Context(), date)
	} else {
		records, err = h.Attendance.List(r.Context())
	}
	if err != nil {
		api.Degraded(w, []attendance.Record{}, err.Error(), requestID)
		return
	}
	api.Success(w, shared.Page(records, shared.ParsePagination(r, 1000)), requestID)
}

func (h *Handler) handleSlots(w http.ResponseWriter, r *http.Request) {
	api.Success(w, attendance.Presets(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	date, ok := shared.Day(chi.URLParam(r, "date"), h.today())
	if !ok {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "date must be YYYY-MM-DD", requestID)
		return
	}
	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	var payload markPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	mark, err := payload.mark(date, employeeID)
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	out, err := h.Attendance.Save(r.Context(), mark)
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

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.PathID(w, r, "recordID")
	if !ok {
		return
	}
	out, err := h.Attendance.Delete(r.Context(), id)
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	api.Done(w, http.StatusOK, map[string]int64{"id": id}, out.Message, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	date, ok := shared.Day(chi.URLParam(r, "date"), h.today())
	if !ok {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "date must be YYYY-MM-DD", requestID)
		return
	}
	employees, err := h.Employees.List(r.Context())
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	sheet, err := h.Attendance.Sheet(r.Context(), date, employees)
	if err != nil {
		api.FailFromError(w, err, requestID)
		return
	}
	var buf bytes.Buffer
	if err := attendance.WriteXLSX(&buf, sheet); err != nil {
		slog.Warn("attendance export failed", "requestId", requestID, "date", date, "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export attendance", requestID)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+attendance.ExportFilename(date))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("attendance export write failed", "requestId", requestID, "err", err)
	}
}
