package handlers

import (
	"context"
	"errors"

	"github.com/NoteLegend/CodeKeep/internal/middleware"
	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/NoteLegend/CodeKeep/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type SnippetHandler struct {
	snippetService    SnippetServiceInterface
	collectionService CollectionServiceInterface
}

func NewSnippetHandler(snippetService SnippetServiceInterface, collectionService CollectionServiceInterface) *SnippetHandler {
	return &SnippetHandler{
		snippetService:    snippetService,
		collectionService: collectionService,
	}
}

func (h *SnippetHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	var filter services.SnippetFilter

	if raw := c.QueryParam("collection"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			_ = c.JSON(400, dto.Error("Invalid collection ID"))
			return
		}
		filter.CollectionID = &id
	}
	// Only the literal string "true" activates the favorites filter.
	filter.FavoritesOnly = c.QueryParam("isFavorite") == "true"
	filter.Tag = c.QueryParam("tag")

	ctx := context.Background()

	snippets, err := h.snippetService.List(ctx, userID, filter)
	if err != nil {
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	if snippets == nil {
		snippets = []models.Snippet{}
	}
	_ = c.JSON(200, dto.List(len(snippets), snippets))
}

func (h *SnippetHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	snippetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(404, dto.Error("Snippet not found"))
		return
	}

	ctx := context.Background()

	snippet, err := h.snippetService.Get(ctx, snippetID, userID)
	if err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			_ = c.JSON(404, dto.Error("Snippet not found"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.Data(snippet))
}

func (h *SnippetHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	var req dto.CreateSnippetRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.Error("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		_ = c.JSON(400, dto.ValidationErrors(errs))
		return
	}

	ctx := context.Background()

	// The referenced collection must exist and belong to the caller.
	if _, err := h.collectionService.Get(ctx, req.CollectionID(), userID); err != nil {
		if errors.Is(err, services.ErrCollectionNotFound) {
			_ = c.JSON(400, dto.Error("Collection not found or does not belong to user"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	snippet, err := h.snippetService.Create(ctx, userID, services.SnippetInput{
		Title:        req.Title,
		Code:         req.Code,
		Language:     req.Language,
		Explanation:  req.Explanation,
		Tags:         req.Tags,
		IsFavorite:   req.IsFavorite,
		CollectionID: req.CollectionID(),
	})
	if err != nil {
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(201, dto.Data(snippet))
}

func (h *SnippetHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	snippetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(404, dto.Error("Snippet not found"))
		return
	}

	var req dto.UpdateSnippetRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.Error("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		_ = c.JSON(400, dto.ValidationErrors(errs))
		return
	}

	ctx := context.Background()

	existing, err := h.snippetService.Get(ctx, snippetID, userID)
	if err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			_ = c.JSON(404, dto.Error("Snippet not found"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	// Re-verify ownership when the collection reference changes.
	if id := req.CollectionID(); id != nil && *id != existing.CollectionID {
		if _, err := h.collectionService.Get(ctx, *id, userID); err != nil {
			if errors.Is(err, services.ErrCollectionNotFound) {
				_ = c.JSON(400, dto.Error("Collection not found or does not belong to user"))
				return
			}
			_ = c.JSON(500, dto.Error("Server error"))
			return
		}
	}

	snippet, err := h.snippetService.Update(ctx, snippetID, userID, services.SnippetUpdate{
		Title:        req.Title,
		Code:         req.Code,
		Language:     req.Language,
		Explanation:  req.Explanation,
		Tags:         req.Tags,
		IsFavorite:   req.IsFavorite,
		CollectionID: req.CollectionID(),
	})
	if err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			_ = c.JSON(404, dto.Error("Snippet not found"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.Data(snippet))
}

func (h *SnippetHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	snippetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(404, dto.Error("Snippet not found"))
		return
	}

	ctx := context.Background()

	if err := h.snippetService.Delete(ctx, snippetID, userID); err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			_ = c.JSON(404, dto.Error("Snippet not found"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.Message("Snippet deleted successfully"))
}

func (h *SnippetHandler) ToggleFavorite(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	snippetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(404, dto.Error("Snippet not found"))
		return
	}

	ctx := context.Background()

	snippet, err := h.snippetService.ToggleFavorite(ctx, snippetID, userID)
	if err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			_ = c.JSON(404, dto.Error("Snippet not found"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.Data(snippet))
}
