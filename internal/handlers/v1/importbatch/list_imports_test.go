package importbatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/cashflow-server/internal/service"
)

type mockImportLister struct {
	mock.Mock
}

func (m *mockImportLister) ListImports(ctx context.Context, organisationID uuid.UUID, cursor *service.ImportCursor) ([]service.ImportBatch, *service.ImportCursor, error) {
	args := m.Called(ctx, organisationID, cursor)
	batches, _ := args.Get(0).([]service.ImportBatch)
	next, _ := args.Get(1).(*service.ImportCursor)
	return batches, next, args.Error(2)
}

func newListTestAPI(t *testing.T, svc importLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListImportsHandler(svc).Register(api)
	return api
}

func TestHTTP_ListImports(t *testing.T) {
	organisationID := uuid.Must(uuid.NewV4())
	batchID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockImportLister)
	mockSvc.On("ListImports", mock.Anything, organisationID, (*service.ImportCursor)(nil)).
		Return([]service.ImportBatch{
			{
				ID:             batchID,
				OrganisationID: organisationID,
				AccountID:      uuid.Must(uuid.NewV4()),
				Filename:       "january.csv",
				TotalRows:      10,
				SuccessfulRows: 9,
				FailedRows:     1,
				Status:         "completed_with_errors",
			},
		}, (*service.ImportCursor)(nil), nil)

	resp := newListTestAPI(t, mockSvc).Get(fmt.Sprintf("/v1/imports?organisationID=%s", organisationID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListImportsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Imports, 1)
	assert.Equal(t, batchID.String(), body.Imports[0].ID)
	assert.Equal(t, "completed_with_errors", body.Imports[0].Status)
	assert.Nil(t, body.NextCursor)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListImports_WithCursor(t *testing.T) {
	organisationID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockImportLister)
	mockSvc.On("ListImports", mock.Anything, organisationID, mock.MatchedBy(func(c *service.ImportCursor) bool {
		return c != nil && c.Position == 20 && c.Limit == 10
	})).Return(([]service.ImportBatch)(nil), (*service.ImportCursor)(nil), nil)

	resp := newListTestAPI(t, mockSvc).Get(fmt.Sprintf("/v1/imports?organisationID=%s&position=20&limit=10", organisationID))

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListImports_InvalidOrganisationID(t *testing.T) {
	mockSvc := new(mockImportLister)

	resp := newListTestAPI(t, mockSvc).Get("/v1/imports?organisationID=not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "ListImports")
}
