package api

import (
	"errors"
	"net/http"
	"time"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EquipmentHandler holds the equipment service dependency.
type EquipmentHandler struct {
	equipmentService service.EquipmentService
}

// NewEquipmentHandler creates a new EquipmentHandler.
func NewEquipmentHandler(equipmentService service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

// --- DTOs for API (Data Transfer Objects) ---

// EquipmentRequest defines the expected JSON for creating or updating equipment.
type EquipmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"omitempty"`    // e.g., "Free Weights", "Cardio"
	Description string `json:"description" binding:"omitempty"`
}

// PhotoUploadRequest defines the expected JSON for requesting a photo upload URL.
type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"` // e.g., "image/jpeg"
}

// PhotoConfirmRequest defines the expected JSON for confirming a finished upload.
type PhotoConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// EquipmentResponse is the DTO for returning equipment details.
type EquipmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	HasPhoto    bool      `json:"hasPhoto"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PhotoUploadResponse carries the presigned PUT URL and the key the client
// must echo back on confirmation.
type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// MapEquipmentToResponse converts a domain.Equipment to EquipmentResponse DTO.
func MapEquipmentToResponse(eq *domain.Equipment) EquipmentResponse {
	if eq == nil {
		return EquipmentResponse{}
	}
	return EquipmentResponse{
		ID:          eq.ID.Hex(),
		Name:        eq.Name,
		Category:    eq.Category,
		Description: eq.Description,
		HasPhoto:    eq.PhotoObjectKey != "",
		CreatedAt:   eq.CreatedAt,
		UpdatedAt:   eq.UpdatedAt,
	}
}

// MapEquipmentListToResponse converts a slice of domain.Equipment to response DTOs.
func MapEquipmentListToResponse(items []domain.Equipment) []EquipmentResponse {
	responses := make([]EquipmentResponse, len(items))
	for i, eq := range items {
		responses[i] = MapEquipmentToResponse(&eq)
	}
	return responses
}

// --- Handler Methods ---

// CreateEquipment godoc
// @Summary Add equipment to the catalog
// @Description Creates a new equipment item in the user's catalog.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param equipment body EquipmentRequest true "Equipment details"
// @Success 201 {object} EquipmentResponse "Equipment created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /equipment [post]
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	equipment, err := h.equipmentService.CreateEquipment(c.Request.Context(), userID, req.Name, req.Category, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create equipment.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapEquipmentToResponse(equipment))
}

// GetEquipment godoc
// @Summary List the equipment catalog
// @Description Retrieves all equipment items in the user's catalog.
// @Tags Equipment
// @Produce json
// @Success 200 {array} EquipmentResponse "List of equipment"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /equipment [get]
func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}

	items, err := h.equipmentService.GetEquipmentByUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve equipment.")
		return
	}

	if items == nil {
		c.JSON(http.StatusOK, []EquipmentResponse{})
		return
	}

	c.JSON(http.StatusOK, MapEquipmentListToResponse(items))
}

// GetEquipmentByID godoc
// @Summary Get a single equipment item
// @Tags Equipment
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} EquipmentResponse "Equipment details"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Equipment not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /equipment/{id} [get]
func (h *EquipmentHandler) GetEquipmentByID(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	equipmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	equipment, err := h.equipmentService.GetEquipmentByID(c.Request.Context(), userID, equipmentID)
	if err != nil {
		handleEquipmentServiceError(c, err, "Failed to retrieve equipment.")
		return
	}

	c.JSON(http.StatusOK, MapEquipmentToResponse(equipment))
}

// UpdateEquipment godoc
// @Summary Update an equipment item
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param equipment body EquipmentRequest true "Updated equipment details"
// @Success 200 {object} EquipmentResponse "Equipment updated successfully"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Equipment not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /equipment/{id} [put]
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	equipmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	equipment, err := h.equipmentService.UpdateEquipment(c.Request.Context(), userID, equipmentID, req.Name, req.Category, req.Description)
	if err != nil {
		handleEquipmentServiceError(c, err, "Failed to update equipment.")
		return
	}

	c.JSON(http.StatusOK, MapEquipmentToResponse(equipment))
}

// DeleteEquipment godoc
// @Summary Delete an equipment item
// @Description Removes the equipment item and its stored photo, if any.
// @Tags Equipment
// @Param id path string true "Equipment ID"
// @Success 204 "Equipment deleted"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Equipment not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /equipment/{id} [delete]
func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	equipmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	if err := h.equipmentService.DeleteEquipment(c.Request.Context(), userID, equipmentID); err != nil {
		handleEquipmentServiceError(c, err, "Failed to delete equipment.")
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestPhotoUpload godoc
// @Summary Request a presigned photo upload URL
// @Description Returns a presigned PUT URL for uploading an equipment photo directly to object storage.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param upload body PhotoUploadRequest true "Upload details"
// @Success 200 {object} PhotoUploadResponse "Presigned upload URL"
// @Failure 400 {object} gin.H "Invalid input or unsupported content type"
// @Failure 404 {object} gin.H "Equipment not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /equipment/{id}/photo/upload-url [post]
func (h *EquipmentHandler) RequestPhotoUpload(c *gin.Context) {
	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	equipmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	upload, err := h.equipmentService.RequestPhotoUploadURL(c.Request.Context(), userID, equipmentID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhotoType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		handleEquipmentServiceError(c, err, "Failed to generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, PhotoUploadResponse{
		UploadURL: upload.UploadURL,
		ObjectKey: upload.ObjectKey,
	})
}

// ConfirmPhotoUpload godoc
// @Summary Confirm a finished photo upload
// @Description Records the uploaded object key on the equipment item. Replaces and cleans up any previous photo.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param confirm body PhotoConfirmRequest true "Uploaded object key"
// @Success 200 {object} EquipmentResponse "Equipment with photo recorded"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Equipment not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /equipment/{id}/photo/confirm [post]
func (h *EquipmentHandler) ConfirmPhotoUpload(c *gin.Context) {
	var req PhotoConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	equipmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	equipment, err := h.equipmentService.ConfirmPhotoUpload(c.Request.Context(), userID, equipmentID, req.ObjectKey)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		handleEquipmentServiceError(c, err, "Failed to confirm photo upload.")
		return
	}

	c.JSON(http.StatusOK, MapEquipmentToResponse(equipment))
}

// GetPhotoDownloadURL godoc
// @Summary Get a presigned photo download URL
// @Tags Equipment
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} gin.H "Presigned download URL"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 404 {object} gin.H "Equipment or photo not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /equipment/{id}/photo/download-url [get]
func (h *EquipmentHandler) GetPhotoDownloadURL(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	equipmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format.")
		return
	}

	url, err := h.equipmentService.GetPhotoDownloadURL(c.Request.Context(), userID, equipmentID)
	if err != nil {
		if errors.Is(err, service.ErrNoPhoto) {
			abortWithError(c, http.StatusNotFound, "Equipment has no photo.")
			return
		}
		handleEquipmentServiceError(c, err, "Failed to generate download URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// handleEquipmentServiceError maps common equipment service errors to HTTP
// status codes, falling back to a 500 with a generic message.
func handleEquipmentServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrEquipmentNotFound):
		abortWithError(c, http.StatusNotFound, "Equipment not found.")
	case errors.Is(err, service.ErrEquipmentAccessDenied):
		abortWithError(c, http.StatusForbidden, "Access to this equipment is denied.")
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
