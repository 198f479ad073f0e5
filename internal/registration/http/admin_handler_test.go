package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/rsvp/internal/errors"
	"github.com/allisson/rsvp/internal/registration/domain"
	"github.com/allisson/rsvp/internal/registration/http/dto"
)

func newAdminRouter(useCase *MockAdminUseCase) *gin.Engine {
	handler := NewAdminHandler(useCase, testLogger())

	router := gin.New()
	router.GET("/v1/admin/registrations", handler.ListHandler)
	return router
}

func TestAdminHandler_List(t *testing.T) {
	useCase := &MockAdminUseCase{}
	router := newAdminRouter(useCase)

	registrations := []*domain.Registration{
		{ID: uuid.Must(uuid.NewV7()), GuestName: "Alice", Email: "alice@example.com", Status: domain.StatusConfirmed},
		{ID: uuid.Must(uuid.NewV7()), GuestName: "Bob", Email: "bob@example.com", Status: domain.StatusCancelled},
	}
	useCase.On("ListRegistrations", mock.Anything, 0, 50).Return(registrations, nil)

	recorder := perform(router, http.MethodGet, "/v1/admin/registrations", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp dto.ListRegistrationsResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "Alice", resp.Data[0].GuestName)
}

func TestAdminHandler_List_Pagination(t *testing.T) {
	useCase := &MockAdminUseCase{}
	router := newAdminRouter(useCase)

	useCase.On("ListRegistrations", mock.Anything, 20, 10).Return([]*domain.Registration{}, nil)

	recorder := perform(router, http.MethodGet, "/v1/admin/registrations?offset=20&limit=10", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	useCase.AssertExpectations(t)
}

func TestAdminHandler_List_InvalidPagination(t *testing.T) {
	useCase := &MockAdminUseCase{}
	router := newAdminRouter(useCase)

	recorder := perform(router, http.MethodGet, "/v1/admin/registrations?limit=500", "")

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	useCase.AssertNotCalled(t, "ListRegistrations", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminHandler_List_RepositoryError(t *testing.T) {
	useCase := &MockAdminUseCase{}
	router := newAdminRouter(useCase)

	useCase.On("ListRegistrations", mock.Anything, 0, 50).
		Return(nil, apperrors.New("connection reset"))

	recorder := perform(router, http.MethodGet, "/v1/admin/registrations", "")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
