package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/cashflow-server/internal/service"
)

type mockAccountGetter struct {
	mock.Mock
}

func (m *mockAccountGetter) GetAccount(ctx context.Context, organisationID, id uuid.UUID) (*service.Account, error) {
	args := m.Called(ctx, organisationID, id)
	acc, _ := args.Get(0).(*service.Account)
	return acc, args.Error(1)
}

func newGetTestAPI(t *testing.T, svc accountGetter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetAccountHandler(svc).Register(api)
	return api
}

func TestHTTP_GetAccount(t *testing.T) {
	organisationID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountGetter)
	mockSvc.On("GetAccount", mock.Anything, organisationID, accountID).Return(&service.Account{
		ID:                 accountID,
		OrganisationID:     organisationID,
		Name:               "Current Account",
		Currency:           "GBP",
		OpeningBalance:     decimal.RequireFromString("1000.00"),
		OpeningBalanceDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentBalance:     decimal.RequireFromString("2550.00"),
		IsActive:           true,
	}, nil)

	resp := newGetTestAPI(t, mockSvc).Get(fmt.Sprintf("/v1/account/%s?organisationID=%s", accountID, organisationID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Account
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, accountID.String(), body.ID)
	assert.Equal(t, "2550", body.CurrentBalance)
	assert.Equal(t, "2026-01-01", body.OpeningBalanceDate)
	assert.True(t, body.IsActive)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetAccount_NotOwnedReadsAsNotFound(t *testing.T) {
	mockSvc := new(mockAccountGetter)
	mockSvc.On("GetAccount", mock.Anything, mock.Anything, mock.Anything).
		Return((*service.Account)(nil), service.ErrNotOwned)

	resp := newGetTestAPI(t, mockSvc).Get(fmt.Sprintf("/v1/account/%s?organisationID=%s",
		uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())))

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetAccount_ServiceError(t *testing.T) {
	mockSvc := new(mockAccountGetter)
	mockSvc.On("GetAccount", mock.Anything, mock.Anything, mock.Anything).
		Return((*service.Account)(nil), errors.New("database unavailable"))

	resp := newGetTestAPI(t, mockSvc).Get(fmt.Sprintf("/v1/account/%s?organisationID=%s",
		uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_GetAccount_InvalidID(t *testing.T) {
	mockSvc := new(mockAccountGetter)

	resp := newGetTestAPI(t, mockSvc).Get(fmt.Sprintf("/v1/account/not-a-uuid?organisationID=%s", uuid.Must(uuid.NewV4())))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "GetAccount")
}
