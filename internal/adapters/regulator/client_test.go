package regulator_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/remitflow/remit_backend/internal/adapters/regulator"
	"github.com/remitflow/remit_backend/internal/apperrors"
	"github.com/remitflow/remit_backend/internal/core/domain"
	"github.com/remitflow/remit_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *regulator.Client {
	cfg := &config.Config{
		RegulatorAPIURL: serverURL,
		RegulatorAPIKey: "test-api-key",
	}
	return regulator.NewClient(cfg)
}

func sampleReport() *domain.RegulatorReport {
	return &domain.RegulatorReport{
		TransactionType: domain.TransactionTypeRemittance,
		ReferenceNumber: "RF-20260815093000-AB12CD34",
	}
}

func TestSubmitReport_Success(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path

		var payload domain.RegulatorReport
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "RF-20260815093000-AB12CD34", payload.ReferenceNumber)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"report_id":"REG-REPORT-777"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	reportID, err := client.SubmitReport(context.Background(), sampleReport())

	require.NoError(t, err)
	assert.Equal(t, "REG-REPORT-777", reportID)
	assert.Equal(t, "Bearer test-api-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/api/v1/reports/transactions", gotPath)
}

func TestSubmitReport_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SubmitReport(context.Background(), sampleReport())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.Contains(t, err.Error(), "500")
}

func TestSubmitReport_MissingReportID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SubmitReport(context.Background(), sampleReport())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestSubmitReport_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.SubmitReport(context.Background(), sampleReport())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestSubmitBatch_PartialSuccess(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
			"report_ids": {"RF-1": "REG-1", "RF-2": "REG-2"},
			"errors": {"RF-3": "identification missing"}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ids, itemErrs, err := client.SubmitBatch(context.Background(), &domain.RegulatorBatchReport{BatchID: "batch-1"})

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/reports/transactions/batch", gotPath)
	assert.Equal(t, map[string]string{"RF-1": "REG-1", "RF-2": "REG-2"}, ids)
	assert.Equal(t, map[string]string{"RF-3": "identification missing"}, itemErrs)
}

func TestSubmitBatch_EmptyResponseMaps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ids, itemErrs, err := client.SubmitBatch(context.Background(), &domain.RegulatorBatchReport{BatchID: "batch-1"})

	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.NotNil(t, itemErrs)
	assert.Empty(t, ids)
	assert.Empty(t, itemErrs)
}

func TestSubmitReport_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	_, err := client.SubmitReport(ctx, sampleReport())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}
