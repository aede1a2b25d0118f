package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/dto"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

// TagHandler serves tag endpoints.
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

type tagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListTags returns every tag with its task count.
func (h *TagHandler) ListTags(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	tags, err := h.tagService.ListTags()
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagListItemDTOs(tags))
}

// GetTag returns a tag.
func (h *TagHandler) GetTag(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	tag, err := h.tagService.GetTag(c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}

// CreateTag creates a tag.
func (h *TagHandler) CreateTag(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	var req tagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(services.TagInput{Name: req.Name, Color: req.Color})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTagDTO(*tag))
}

// UpdateTag renames or recolors a tag.
func (h *TagHandler) UpdateTag(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	var req tagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.UpdateTag(c.Param("id"), services.TagInput{Name: req.Name, Color: req.Color})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}

// DeleteTag deletes a tag that no task uses.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Param("id")); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

// SearchTasks lists tasks carrying a tag in the caller's workspaces.
func (h *TagHandler) SearchTasks(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	tasks, err := h.tagService.SearchTasks(c.Param("id"), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	results := make([]dto.TaskSearchResultDTO, len(tasks))
	for i, task := range tasks {
		results[i] = dto.ToTaskSearchResultDTO(task)
	}
	c.JSON(http.StatusOK, results)
}
