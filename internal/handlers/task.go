package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

// TaskHandler serves task endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns the tasks of a project, optionally filtered by section_id.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var sectionID *string
	if s := c.Query("section_id"); s != "" {
		sectionID = &s
	}

	items, err := h.taskService.ListTasks(c.Param("id"), userID, sectionID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	response := make([]dto.TaskListItemDTO, len(items))
	for i, item := range items {
		response[i] = dto.ToTaskListItemDTO(item.Task, item.Counts)
	}
	c.JSON(http.StatusOK, response)
}

// GetTask returns a task with its sub-tasks, comments and attachments.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailDTO(*task))
}

// CreateTask creates a task in a project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		SectionID    string              `json:"section_id"`
		Name         string              `json:"name"`
		Description  string              `json:"description"`
		AssigneeID   *string             `json:"assignee_id"`
		DueDate      *time.Time          `json:"due_date"`
		Priority     models.TaskPriority `json:"priority"`
		ParentTaskID *string             `json:"parent_task_id"`
		TagIDs       []string            `json:"tag_ids"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, warnings, err := h.taskService.CreateTask(userID, services.CreateTaskInput{
		ProjectID:    c.Param("id"),
		SectionID:    req.SectionID,
		Name:         req.Name,
		Description:  req.Description,
		AssigneeID:   req.AssigneeID,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		ParentTaskID: req.ParentTaskID,
		TagIDs:       req.TagIDs,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task":     dto.ToTaskDetailDTO(*task),
		"warnings": dto.Warnings(warnings),
	})
}

// UpdateTask updates a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Name          string               `json:"name"`
		Description   *string              `json:"description"`
		AssigneeID    *string              `json:"assignee_id"`
		ClearAssignee bool                 `json:"clear_assignee"`
		DueDate       *time.Time           `json:"due_date"`
		ClearDueDate  bool                 `json:"clear_due_date"`
		Priority      *models.TaskPriority `json:"priority"`
		Status        models.TaskStatus    `json:"status"`
		TagIDs        *[]string            `json:"tag_ids"`
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, warnings, err := h.taskService.UpdateTask(c.Param("id"), userID, services.UpdateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		AssigneeID:    req.AssigneeID,
		ClearAssignee: req.ClearAssignee,
		DueDate:       req.DueDate,
		ClearDueDate:  req.ClearDueDate,
		Priority:      req.Priority,
		Status:        req.Status,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":     dto.ToTaskDetailDTO(*task),
		"warnings": dto.Warnings(warnings),
	})
}

// DeleteTask deletes a task and its sub-tasks.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Param("id"), userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// MoveTask moves a task to another section of the same project.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type MoveTaskRequest struct {
		SectionID string `json:"section_id" binding:"required"`
	}

	var req MoveTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.MoveToSection(c.Param("id"), userID, req.SectionID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailDTO(*task))
}

// SuggestTasks extracts task suggestions from free text using AI.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type SuggestTasksRequest struct {
		Text string `json:"text"`
	}

	var req SuggestTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	suggestions, err := h.taskService.SuggestTasks(c.Request.Context(), userID, services.SuggestTasksInput{
		ProjectID: c.Param("id"),
		Text:      req.Text,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": suggestions})
}
