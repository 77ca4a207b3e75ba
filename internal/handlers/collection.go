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

type CollectionHandler struct {
	collectionService CollectionServiceInterface
}

func NewCollectionHandler(collectionService CollectionServiceInterface) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

func (h *CollectionHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	ctx := context.Background()

	collections, err := h.collectionService.List(ctx, userID)
	if err != nil {
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	if collections == nil {
		collections = []models.Collection{}
	}
	_ = c.JSON(200, dto.List(len(collections), collections))
}

func (h *CollectionHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	// An unparseable id cannot belong to the caller; answer the same way
	// as a missing record so nothing about other users' ids leaks.
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(404, dto.Error("Collection not found"))
		return
	}

	ctx := context.Background()

	collection, err := h.collectionService.Get(ctx, collectionID, userID)
	if err != nil {
		if errors.Is(err, services.ErrCollectionNotFound) {
			_ = c.JSON(404, dto.Error("Collection not found"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.Data(collection))
}

func (h *CollectionHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.Error("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		_ = c.JSON(400, dto.ValidationErrors(errs))
		return
	}

	ctx := context.Background()

	collection, err := h.collectionService.Create(ctx, userID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateCollection) {
			_ = c.JSON(400, dto.Error("Collection with this name already exists"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(201, dto.Data(collection))
}

func (h *CollectionHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(404, dto.Error("Collection not found"))
		return
	}

	var req dto.UpdateCollectionRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(400, dto.Error("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		_ = c.JSON(400, dto.ValidationErrors(errs))
		return
	}

	ctx := context.Background()

	collection, err := h.collectionService.Update(ctx, collectionID, userID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrCollectionNotFound) {
			_ = c.JSON(404, dto.Error("Collection not found"))
			return
		}
		if errors.Is(err, services.ErrDuplicateCollection) {
			_ = c.JSON(400, dto.Error("Collection with this name already exists"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.Data(collection))
}

func (h *CollectionHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.JSON(401, dto.Error("Not authorized to access this route"))
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(404, dto.Error("Collection not found"))
		return
	}

	ctx := context.Background()

	if err := h.collectionService.Delete(ctx, collectionID, userID); err != nil {
		if errors.Is(err, services.ErrCollectionNotFound) {
			_ = c.JSON(404, dto.Error("Collection not found"))
			return
		}
		_ = c.JSON(500, dto.Error("Server error"))
		return
	}

	_ = c.JSON(200, dto.Message("Collection deleted successfully"))
}
