package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/internal/interfaces/http/middleware"
	"cling-reminder.backend/internal/interfaces/http/response"
	"cling-reminder.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type ReminderService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.CreateReminderInput) (*entities.Reminder, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error)
	List(ctx context.Context, userID uuid.UUID, filter entities.ReminderFilter, page int) ([]*entities.Reminder, *utils.PaginationMeta, error)
	Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateReminderInput) (*entities.Reminder, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	MarkCompleted(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error)
	ReconcileOverdue(ctx context.Context, userID *uuid.UUID) (int64, error)
}

// ReminderHandler handles reminder endpoints
type ReminderHandler struct {
	reminderUsecase ReminderService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderUsecase ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderUsecase: reminderUsecase}
}

// Create creates a reminder
// POST /api/reminders
func (h *ReminderHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.CreateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Title is required"))
		return
	}

	reminder, err := h.reminderUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reminder)
}

// Get returns a single reminder
// GET /api/reminders/:id
func (h *ReminderHandler) Get(c *gin.Context) {
	userID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	reminder, err := h.reminderUsecase.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.reminderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reminder)
}

// List returns a filtered page of the user's reminders
// GET /api/reminders
func (h *ReminderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	status := entities.ReminderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		response.Error(c, domainerrors.BadRequest("Invalid status value"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	filter := entities.ReminderFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Status:   status,
		DateFrom: parseQueryDate(c.Query("dateFrom")),
		DateTo:   parseQueryDate(c.Query("dateTo")),
		SortBy:   c.DefaultQuery("sortBy", "date"),
		Order:    c.DefaultQuery("order", "asc"),
		Limit:    params.Limit,
		Offset:   params.CalculateOffset(),
	}

	reminders, meta, err := h.reminderUsecase.List(c.Request.Context(), userID, filter, params.Page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"meta": meta,
		"data": reminders,
	})
}

// Update applies a partial update to a reminder
// PUT /api/reminders/:id
func (h *ReminderHandler) Update(c *gin.Context) {
	userID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var input entities.UpdateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	reminder, err := h.reminderUsecase.Update(c.Request.Context(), userID, id, &input)
	if err != nil {
		h.reminderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reminder)
}

// Delete removes a reminder
// DELETE /api/reminders/:id
func (h *ReminderHandler) Delete(c *gin.Context) {
	userID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	if err := h.reminderUsecase.Delete(c.Request.Context(), userID, id); err != nil {
		h.reminderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// Complete marks a reminder completed
// PATCH /api/reminders/:id/complete
func (h *ReminderHandler) Complete(c *gin.Context) {
	userID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	reminder, err := h.reminderUsecase.MarkCompleted(c.Request.Context(), userID, id)
	if err != nil {
		h.reminderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reminder)
}

// Reconcile persists overdue status for past-due reminders. With a
// session it is scoped to the caller; anonymous runs cover all users.
// POST /api/reminders/reconcile
func (h *ReminderHandler) Reconcile(c *gin.Context) {
	var scope *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		scope = &userID
	}

	modified, err := h.reminderUsecase.ReconcileOverdue(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	// A single bulk UPDATE matches exactly the rows it changes.
	response.Success(c, http.StatusOK, gin.H{"matched": modified, "modified": modified})
}

// ownerAndID resolves the authenticated user and the :id path param,
// writing the error response itself when either is missing
func (h *ReminderHandler) ownerAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid id"))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func (h *ReminderHandler) reminderError(c *gin.Context, err error) {
	if errors.Is(err, domainerrors.ErrNotFound) {
		response.Error(c, domainerrors.NotFound("Reminder not found"))
		return
	}
	response.Error(c, err)
}

func parseQueryDate(value string) null.Time {
	if value == "" {
		return null.Time{}
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return null.TimeFrom(ts)
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return null.TimeFrom(ts)
	}
	return null.Time{}
}
