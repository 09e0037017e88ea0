package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/employee"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/handler/http/response"
)

type PenaltyHandler interface {
	ApplyManual(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
	RemoveDaily(w http.ResponseWriter, r *http.Request)
	RemoveMonthly(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Total(w http.ResponseWriter, r *http.Request)
	Salary(w http.ResponseWriter, r *http.Request)
}

type penaltyHandlerImpl struct {
	penaltyService penalty.Service
	employeeRepo   employee.Repository
}

func NewPenaltyHandler(penaltyService penalty.Service, employeeRepo employee.Repository) PenaltyHandler {
	return &penaltyHandlerImpl{
		penaltyService: penaltyService,
		employeeRepo:   employeeRepo,
	}
}

// ApplyManual implements PenaltyHandler.
func (h *penaltyHandlerImpl) ApplyManual(w http.ResponseWriter, r *http.Request) {
	var req penalty.ManualPenaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AppliedBy = actorFromToken(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.penaltyService.ApplyManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Penalty applied", entry)
}

// Remove implements PenaltyHandler.
func (h *penaltyHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	var req penalty.RemovePenaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PenaltyID = chi.URLParam(r, "id")
	req.RemovedBy = actorFromToken(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.penaltyService.Remove(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalty removed", entry)
}

// RemoveDaily implements PenaltyHandler.
func (h *penaltyHandlerImpl) RemoveDaily(w http.ResponseWriter, r *http.Request) {
	var req penalty.BulkRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RemovedBy = actorFromToken(r)

	result, err := h.penaltyService.RemoveDaily(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalties removed", result)
}

// RemoveMonthly implements PenaltyHandler.
func (h *penaltyHandlerImpl) RemoveMonthly(w http.ResponseWriter, r *http.Request) {
	var req penalty.BulkRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RemovedBy = actorFromToken(r)

	result, err := h.penaltyService.RemoveMonthly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalties removed", result)
}

// List implements PenaltyHandler.
func (h *penaltyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, from, to, err := h.rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.penaltyService.ListByEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Total implements PenaltyHandler.
func (h *penaltyHandlerImpl) Total(w http.ResponseWriter, r *http.Request) {
	employeeID, from, to, err := h.rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	total, err := h.penaltyService.TotalActive(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, penalty.TotalResponse{
		EmployeeID: employeeID,
		From:       from.Format("2006-01-02"),
		To:         to.Format("2006-01-02"),
		Total:      total,
	})
}

// Salary implements PenaltyHandler.
func (h *penaltyHandlerImpl) Salary(w http.ResponseWriter, r *http.Request) {
	employeeID, from, to, err := h.rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeRepo.GetByID(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	salary, err := h.penaltyService.FinalSalary(r.Context(), employeeID, emp.BaseSalary, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, salary)
}

// rangeParams resolves the target employee and date range for read
// endpoints. The employee defaults to the token's identity; admins may
// query another employee via the employee_id query param.
func (h *penaltyHandlerImpl) rangeParams(r *http.Request) (string, time.Time, time.Time, error) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID, _ = employeeIDFromToken(r)
	}

	filter := attendance.RangeFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	from, to, err := filter.Validate()
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	return employeeID, from, to, nil
}
