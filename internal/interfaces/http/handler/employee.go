package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	hrapp "github.com/holycity/portal/internal/application/hr"
	"github.com/holycity/portal/internal/interfaces/http/dto"
)

// EmployeeHandler handles the HR employee directory endpoints
type EmployeeHandler struct {
	BaseHandler
	service *hrapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(service *hrapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// CreateEmployeeRequest is the employee creation request body
type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
	JoinDate   string `json:"join_date"`
	Salary     string `json:"salary"`
}

// UpdateEmployeeRequest is the employee update request body; omitted fields
// are left unchanged
type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	JoinDate   *string `json:"join_date"`
	Salary     *string `json:"salary"`
}

// RecordPerformanceRequest is the performance review request body
type RecordPerformanceRequest struct {
	Period    string  `json:"period" binding:"required"`
	Score     float64 `json:"score" binding:"required"`
	Remarks   string  `json:"remarks"`
	Evaluator string  `json:"evaluator"`
}

// Create adds an employee to the directory
// POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.CreateEmployee(c.Request.Context(), hrapp.CreateEmployeeInput{
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
		JoinDate:   req.JoinDate,
		Salary:     req.Salary,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update modifies an existing employee record
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.UpdateEmployee(c.Request.Context(), id, hrapp.UpdateEmployeeInput{
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
		JoinDate:   req.JoinDate,
		Salary:     req.Salary,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns one employee record
// GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	result, err := h.service.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the whole employee directory
// GET /api/v1/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	result, err := h.service.ListEmployees(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordPerformance stores a performance review for an employee
// POST /api/v1/employees/:id/performance
func (h *EmployeeHandler) RecordPerformance(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req RecordPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.RecordPerformance(c.Request.Context(), hrapp.RecordPerformanceInput{
		EmployeeID: id,
		Period:     req.Period,
		Score:      req.Score,
		Remarks:    req.Remarks,
		Evaluator:  req.Evaluator,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPerformance lists an employee's performance reviews
// GET /api/v1/employees/:id/performance
func (h *EmployeeHandler) ListPerformance(c *gin.Context) {
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	result, err := h.service.ListPerformance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *EmployeeHandler) employeeID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return uuid.Nil, false
	}
	return id, true
}
