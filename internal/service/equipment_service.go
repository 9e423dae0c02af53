package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/repository"
	"okoval/fitness-planner/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEquipmentNotFound     = errors.New("equipment not found")
	ErrEquipmentAccessDenied = errors.New("access denied to this equipment")
	ErrValidationFailed      = errors.New("equipment validation failed")
	ErrInvalidPhotoType      = errors.New("invalid or missing image content type")
	ErrNoPhoto               = errors.New("equipment has no photo")
	ErrUploadURLError        = errors.New("failed to generate upload URL")
)

// PhotoUploadURL is returned to the client so it can PUT the photo bytes
// directly to object storage and then confirm with the object key.
type PhotoUploadURL struct {
	UploadURL string
	ObjectKey string
}

// --- Service Interface ---
type EquipmentService interface {
	CreateEquipment(ctx context.Context, userID primitive.ObjectID, name, category, description string) (*domain.Equipment, error)
	GetEquipmentByID(ctx context.Context, userID, equipmentID primitive.ObjectID) (*domain.Equipment, error)
	GetEquipmentByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Equipment, error)
	UpdateEquipment(ctx context.Context, userID, equipmentID primitive.ObjectID, name, category, description string) (*domain.Equipment, error)
	DeleteEquipment(ctx context.Context, userID, equipmentID primitive.ObjectID) error

	RequestPhotoUploadURL(ctx context.Context, userID, equipmentID primitive.ObjectID, contentType string) (*PhotoUploadURL, error)
	ConfirmPhotoUpload(ctx context.Context, userID, equipmentID primitive.ObjectID, objectKey string) (*domain.Equipment, error)
	GetPhotoDownloadURL(ctx context.Context, userID, equipmentID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	fileStorage   storage.FileStorage
}

// NewEquipmentService creates a new instance of equipmentService.
func NewEquipmentService(equipmentRepo repository.EquipmentRepository, fileStorage storage.FileStorage) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		fileStorage:   fileStorage,
	}
}

// CreateEquipment handles adding a new item to the user's catalog.
func (s *equipmentService) CreateEquipment(ctx context.Context, userID primitive.ObjectID, name, category, description string) (*domain.Equipment, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create equipment")
	}

	equipment := &domain.Equipment{
		UserID:      userID,
		Name:        name,
		Category:    category,
		Description: description,
	}

	equipmentID, err := s.equipmentRepo.Create(ctx, equipment)
	if err != nil {
		return nil, err
	}
	// Fetch again so CreatedAt/UpdatedAt come back populated.
	return s.equipmentRepo.GetByID(ctx, equipmentID)
}

// GetEquipmentByID retrieves a single item, enforcing ownership.
func (s *equipmentService) GetEquipmentByID(ctx context.Context, userID, equipmentID primitive.ObjectID) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	if equipment.UserID != userID {
		return nil, ErrEquipmentAccessDenied
	}
	return equipment, nil
}

// GetEquipmentByUser retrieves the user's whole catalog.
func (s *equipmentService) GetEquipmentByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Equipment, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.equipmentRepo.GetByUserID(ctx, userID)
}

// UpdateEquipment handles updating an existing item, ensuring ownership.
func (s *equipmentService) UpdateEquipment(ctx context.Context, userID, equipmentID primitive.ObjectID, name, category, description string) (*domain.Equipment, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.GetEquipmentByID(ctx, userID, equipmentID)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Category = category
	existing.Description = description

	if err := s.equipmentRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteEquipment removes an item and its photo object, if any.
func (s *equipmentService) DeleteEquipment(ctx context.Context, userID, equipmentID primitive.ObjectID) error {
	existing, err := s.GetEquipmentByID(ctx, userID, equipmentID)
	if err != nil {
		return err
	}

	if err := s.equipmentRepo.Delete(ctx, equipmentID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEquipmentNotFound
		}
		return err
	}

	// The catalog entry is gone; a leftover photo object only wastes bucket
	// space, so a failed delete is logged rather than surfaced.
	if existing.PhotoObjectKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, existing.PhotoObjectKey); err != nil {
			log.WithError(err).Warnf("failed to delete photo object %q for equipment %s", existing.PhotoObjectKey, equipmentID.Hex())
		}
	}
	return nil
}

// RequestPhotoUploadURL generates a presigned PUT URL for an equipment photo.
func (s *equipmentService) RequestPhotoUploadURL(ctx context.Context, userID, equipmentID primitive.ObjectID, contentType string) (*PhotoUploadURL, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidPhotoType
	}

	if _, err := s.GetEquipmentByID(ctx, userID, equipmentID); err != nil {
		return nil, err
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("equipment-photos", userID.Hex(), equipmentID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &PhotoUploadURL{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmPhotoUpload records the object key after the client has PUT the
// photo to storage. A previous photo object is cleaned up best effort.
func (s *equipmentService) ConfirmPhotoUpload(ctx context.Context, userID, equipmentID primitive.ObjectID, objectKey string) (*domain.Equipment, error) {
	if objectKey == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.GetEquipmentByID(ctx, userID, equipmentID)
	if err != nil {
		return nil, err
	}

	previousKey := existing.PhotoObjectKey
	existing.PhotoObjectKey = objectKey
	if err := s.equipmentRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if previousKey != "" && previousKey != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previousKey); err != nil {
			log.WithError(err).Warnf("failed to delete replaced photo object %q", previousKey)
		}
	}
	return existing, nil
}

// GetPhotoDownloadURL generates a presigned GET URL for the item's photo.
func (s *equipmentService) GetPhotoDownloadURL(ctx context.Context, userID, equipmentID primitive.ObjectID) (string, error) {
	existing, err := s.GetEquipmentByID(ctx, userID, equipmentID)
	if err != nil {
		return "", err
	}
	if existing.PhotoObjectKey == "" {
		return "", ErrNoPhoto
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, existing.PhotoObjectKey, storage.DefaultPresignedURLExpiry)
}
