package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeEquipmentService struct {
	downloadURL    string
	downloadErr    error
	gotEquipmentID primitive.ObjectID
}

func (f *fakeEquipmentService) CreateEquipment(_ context.Context, userID primitive.ObjectID, name, category, description string) (*domain.Equipment, error) {
	return &domain.Equipment{ID: primitive.NewObjectID(), UserID: userID, Name: name, Category: category, Description: description}, nil
}

func (f *fakeEquipmentService) GetEquipmentByID(_ context.Context, _, _ primitive.ObjectID) (*domain.Equipment, error) {
	return nil, service.ErrEquipmentNotFound
}

func (f *fakeEquipmentService) GetEquipmentByUser(_ context.Context, _ primitive.ObjectID) ([]domain.Equipment, error) {
	return nil, nil
}

func (f *fakeEquipmentService) UpdateEquipment(_ context.Context, _, _ primitive.ObjectID, _, _, _ string) (*domain.Equipment, error) {
	return nil, service.ErrEquipmentNotFound
}

func (f *fakeEquipmentService) DeleteEquipment(_ context.Context, _, _ primitive.ObjectID) error {
	return service.ErrEquipmentNotFound
}

func (f *fakeEquipmentService) RequestPhotoUploadURL(_ context.Context, _, _ primitive.ObjectID, _ string) (*service.PhotoUploadURL, error) {
	return nil, service.ErrEquipmentNotFound
}

func (f *fakeEquipmentService) ConfirmPhotoUpload(_ context.Context, _, _ primitive.ObjectID, _ string) (*domain.Equipment, error) {
	return nil, service.ErrEquipmentNotFound
}

func (f *fakeEquipmentService) GetPhotoDownloadURL(_ context.Context, _ primitive.ObjectID, equipmentID primitive.ObjectID) (string, error) {
	f.gotEquipmentID = equipmentID
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return f.downloadURL, nil
}

func newEquipmentTestRouter(svc service.EquipmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, svc, nil, nil, nil)
	return router
}

func TestEquipmentRoutes_PhotoDownloadURL(t *testing.T) {
	fake := &fakeEquipmentService{downloadURL: "https://storage.test/download/equipment-photos/a/photo.jpeg"}
	router := newEquipmentTestRouter(fake)

	equipmentID := primitive.NewObjectID()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/equipment/"+equipmentID.Hex()+"/photo/download-url", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, equipmentID, fake.gotEquipmentID)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fake.downloadURL, resp["downloadUrl"])
}

func TestEquipmentRoutes_PhotoDownloadURL_NoPhoto(t *testing.T) {
	fake := &fakeEquipmentService{downloadErr: service.ErrNoPhoto}
	router := newEquipmentTestRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/equipment/"+primitive.NewObjectID().Hex()+"/photo/download-url", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
