package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fecscope/fecscope/internal/analysis"
	"github.com/fecscope/fecscope/internal/model"
)

const fecHeader = "JournalCode\tJournalLib\tEcritureNum\tEcritureDate\tCompteNum\tCompteLib\tCompAuxNum\tCompAuxLib\tPieceRef\tPieceDate\tEcritureLib\tDebit\tCredit\tEcritureLet\tDateLet\tValidDate\tMontantdevise\tIdevise"

func fecRow(journal, account, label, debit, credit string) string {
	return strings.Join([]string{
		journal, "Journal " + journal, "1", "20240115", account, label,
		"", "", "PC1", "20240115", "Ecriture", debit, credit,
		"", "", "20240115", "", "",
	}, "\t")
}

func testServer(t *testing.T) *Server {
	t.Helper()
	engine, err := analysis.NewDefaultEngine()
	require.NoError(t, err)
	return New(engine, ":0")
}

func postFEC(t *testing.T, s *Server, body string) uuid.UUID {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotEqual(t, uuid.Nil, created.ID)
	return created.ID
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func saleFEC() string {
	return strings.Join([]string{
		fecHeader,
		fecRow("VE", "411000", "Clients", "1200,00", "0,00"),
		fecRow("VE", "707000", "Ventes", "0,00", "1000,00"),
		fecRow("VE", "445710", "TVA collectée", "0,00", "200,00"),
		fecRow("BQ", "512000", "Banque", "1200,00", "0,00"),
		fecRow("BQ", "411000", "Clients", "0,00", "1200,00"),
	}, "\n")
}

func TestCreateAnalysis(t *testing.T) {
	s := testServer(t)
	id := postFEC(t, s, saleFEC())

	rec := get(s, "/api/v1/analyses/"+id.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var res analysis.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 5, res.Summary.Entries)
	require.NotNil(t, res.BalanceSheet)
	assert.True(t, res.BalanceSheet.Validation.Valid)
}

func TestCreateAnalysis_EmptyBody(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(""))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAnalysis_MalformedRow(t *testing.T) {
	s := testServer(t)

	body := fecHeader + "\nVE\tJournal\t1\t20240115\t411000"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetBalanceSheet(t *testing.T) {
	s := testServer(t)
	id := postFEC(t, s, saleFEC())

	rec := get(s, "/api/v1/analyses/"+id.String()+"/balance-sheet")
	require.Equal(t, http.StatusOK, rec.Code)

	var bs model.BalanceSheet
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bs))
	assert.True(t, bs.TotalAssets.Equal(bs.TotalLiabilities))
}

func TestGetAnalysis_Errors(t *testing.T) {
	s := testServer(t)

	rec := get(s, "/api/v1/analyses/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(s, "/api/v1/analyses/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCashFlow_WithPrior(t *testing.T) {
	s := testServer(t)

	priorBody := strings.Join([]string{
		fecHeader,
		fecRow("AN", "101000", "Capital", "0,00", "10000,00"),
		fecRow("AN", "512000", "Banque", "10000,00", "0,00"),
	}, "\n")
	currentBody := strings.Join([]string{
		fecHeader,
		fecRow("AN", "101000", "Capital", "0,00", "13500,00"),
		fecRow("AN", "512000", "Banque", "13500,00", "0,00"),
	}, "\n")

	priorID := postFEC(t, s, priorBody)
	currentID := postFEC(t, s, currentBody)

	// Without a prior the cash flow is the stored "unavailable" state.
	rec := get(s, "/api/v1/analyses/"+currentID.String()+"/cash-flow")
	require.Equal(t, http.StatusOK, rec.Code)
	var cf model.CashFlowResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cf))
	assert.False(t, cf.Available)

	rec = get(s, "/api/v1/analyses/"+currentID.String()+"/cash-flow?prior="+priorID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	cf = model.CashFlowResult{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cf))
	require.True(t, cf.Available)
	assert.True(t, cf.Financing.CapitalChange.Equal(decimal.RequireFromString("3500.00")))
	assert.True(t, cf.Validation.Valid)

	rec = get(s, "/api/v1/analyses/"+currentID.String()+"/cash-flow?prior="+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
