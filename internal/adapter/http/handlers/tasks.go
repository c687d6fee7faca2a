package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"planloop/internal/adapter/http/dto"
	"planloop/internal/adapter/http/mapper"
	"planloop/internal/adapter/http/middleware"
	"planloop/internal/adapter/http/validation"
	"planloop/internal/core/domain"
	"planloop/internal/core/ports"
	"planloop/pkg/apierrors"
	"planloop/pkg/translator"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.ToTaskItems(h.taskService.Tasks()))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	created, err := h.taskService.AddTask(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
			)
			return
		}
		zap.L().Error("failed to create task", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItems(created))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}
	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	patch, intent, err := validation.BuildTaskPatch(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	ctx := c.Request.Context()
	if req.ConfirmPropagation != nil {
		ctx = withConfirmDecision(ctx, *req.ConfirmPropagation)
	}

	updated, err := h.taskService.UpdateTask(ctx, taskID, patch, intent)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}
		zap.L().Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(updated))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	undo, err := h.taskService.DeleteTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}
		zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, deleteResponse(undo, lang))
}

func (h *TaskHandler) DeleteSeries(c *gin.Context) {
	lang := middleware.GetLang(c)

	seriesID := c.Param("id")
	if seriesID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidSeriesID, lang),
		)
		return
	}

	scope := domain.DeleteScopeFuture
	switch c.DefaultQuery("scope", "future") {
	case "future":
		scope = domain.DeleteScopeFuture
	case "open":
		scope = domain.DeleteScopeOpen
	default:
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	undo, err := h.taskService.DeleteSeries(c.Request.Context(), seriesID, scope)
	if err != nil {
		if errors.Is(err, domain.ErrSeriesNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgSeriesNotFound, lang),
			)
			return
		}
		zap.L().Error("failed to delete series", zap.String("series_id", seriesID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, deleteResponse(undo, lang))
}

func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	// Body is optional; an empty body means "no confirmation given".
	var req dto.ToggleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	ctx := c.Request.Context()
	if req.ConfirmSubtasks != nil {
		ctx = withConfirmDecision(ctx, *req.ConfirmSubtasks)
	}

	result, err := h.taskService.ToggleComplete(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}
		zap.L().Error("failed to toggle task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailToggleTask, lang),
		)
		return
	}

	resp := dto.ToggleTaskResponse{
		Cancelled: result.Cancelled,
		Task:      mapper.ToTaskItem(result.Task),
		Renewed:   len(result.Renewed),
	}
	if len(result.Renewed) > 0 {
		notice := translator.Localize(lang, apierrors.NoticeSeriesRenewed, map[string]interface{}{
			"Title": result.Task.Title,
			"Count": len(result.Renewed),
		})
		resp.Notice = &notice
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) ExtendSeries(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return
	}

	batch, err := h.taskService.ExtendSeries(c.Request.Context(), taskID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
		case errors.Is(err, domain.ErrNotRecurring):
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgTaskNotRecurring, lang),
			)
		case errors.Is(err, domain.ErrSeriesNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgSeriesNotFound, lang),
			)
		default:
			zap.L().Error("failed to extend series", zap.String("task_id", taskID), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailExtendSeries, lang),
			)
		}
		return
	}

	notice := translator.Localize(lang, apierrors.NoticeSeriesExtended, map[string]interface{}{
		"Count": len(batch),
	})
	c.JSON(http.StatusOK, dto.ExtendSeriesResponse{
		Tasks:  mapper.ToTaskItems(batch),
		Notice: &notice,
	})
}

func (h *TaskHandler) Undo(c *gin.Context) {
	lang := middleware.GetLang(c)

	token := c.Param("token")
	if token == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidUndoToken, lang),
		)
		return
	}

	if err := h.taskService.Undo(c.Request.Context(), token); err != nil {
		if errors.Is(err, domain.ErrUndoExpired) {
			c.JSON(
				http.StatusGone,
				apierrors.CreateError(http.StatusGone, apierrors.MsgUndoExpired, lang),
			)
			return
		}
		zap.L().Error("failed to undo deletion", zap.String("token", token), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUndo, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func deleteResponse(undo domain.PendingUndo, lang string) dto.DeleteTaskResponse {
	notice := translator.Localize(lang, apierrors.NoticeTasksDeleted, map[string]interface{}{
		"Count": len(undo.Tasks),
	})
	return dto.DeleteTaskResponse{
		UndoToken: undo.Token,
		ExpiresAt: undo.ExpiresAt.Format(time.RFC3339),
		Removed:   len(undo.Tasks),
		Notice:    &notice,
	}
}
