package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/patricioibar/points-dashboard/dashboard/common"
	"github.com/patricioibar/points-dashboard/filter"
	ic "github.com/patricioibar/points-dashboard/innercommunication"
	"github.com/patricioibar/points-dashboard/loader"
	"github.com/patricioibar/points-dashboard/pivot"
	"github.com/patricioibar/points-dashboard/sales"
	"github.com/patricioibar/points-dashboard/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *httptest.Server {
	t.Helper()
	src := loader.Source{
		Sales: ic.NewRowsBatch(
			[]string{"Data da Venda", "Pontos", "Valor Total", "NF/Pedido", "CPF/CNPJ", "Especificador/Empresa", "Loja", "Segmento", "Numero Temporada"},
			[][]interface{}{
				{"2024-01-10", "100", "1000", "NF1", "123", "P1", "A", "Retail", "1"},
				{"2024-03-05", "200", "2000", "NF2", "123", "P1", "A", "Retail", "1"},
				{"2024-02-01", "400", "4000", "NF3", "789", "P2", "B", "Wholesale", "2"},
			},
		),
		Registrants: ic.NewRowsBatch([]string{"CPF"}, [][]interface{}{{"123"}}),
		Warnings:    []error{&loader.LoadError{Code: loader.LoadMissingSheetError, Msg: "example warning"}},
	}
	srv := httptest.NewServer(server.New(common.New(src, nil)))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := setup(t)
	var body map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/healthz", &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 3.0, body["records"])
}

func TestReportHonoursQuerySelection(t *testing.T) {
	srv := setup(t)

	q := url.Values{}
	q.Add("season", "Season 1")
	q.Add("store", "A")
	var report common.Report
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/report?"+q.Encode(), &report))

	assert.Equal(t, []string{"Season 1"}, report.Selection.Seasons)
	assert.Equal(t, 300.0, report.Metrics.Final.TotalPoints)
	assert.Equal(t, 1, report.Metrics.Final.NewClients)
	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.Comparison.Rows, 5)
}

func TestOptionsCascade(t *testing.T) {
	srv := setup(t)

	var all filter.Options
	getJSON(t, srv, "/api/options", &all)
	assert.Equal(t, []string{"Season 1", "Season 2"}, all.Seasons)
	assert.Equal(t, []string{"Retail", "Wholesale"}, all.Segments)

	var narrowed filter.Options
	getJSON(t, srv, "/api/options?store=B", &narrowed)
	assert.Equal(t, []string{"Wholesale"}, narrowed.Segments)

	var sel filter.Selection
	getJSON(t, srv, "/api/selection/default", &sel)
	assert.Equal(t, []string{"A", "B"}, sel.Stores)
}

func TestScopeMetrics(t *testing.T) {
	srv := setup(t)

	var body struct {
		Scope   string `json:"scope"`
		Rows    int    `json:"rows"`
		Metrics struct {
			TotalPoints float64 `json:"total_points"`
		} `json:"metrics"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/scopes/segment_wide/metrics?segment=Retail&store=B", &body))
	assert.Equal(t, filter.SegmentWideScope, body.Scope)
	assert.Equal(t, 2, body.Rows)
	assert.Equal(t, 300.0, body.Metrics.TotalPoints)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv, "/api/scopes/nope/metrics", nil))
}

func TestRecordsAndWarnings(t *testing.T) {
	srv := setup(t)

	var records []sales.SaleRecord
	getJSON(t, srv, "/api/records", &records)
	require.Len(t, records, 3)
	assert.True(t, records[0].FirstPurchase)
	assert.Equal(t, "Season 2", records[2].SeasonLabel)

	var warnings struct {
		Warnings []string `json:"warnings"`
	}
	getJSON(t, srv, "/api/warnings", &warnings)
	require.Len(t, warnings.Warnings, 1)
	assert.Contains(t, warnings.Warnings[0], "example warning")
}

func TestPivot(t *testing.T) {
	srv := setup(t)

	var p pivot.Table
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/pivots/points?store=A", &p))
	assert.Equal(t, pivot.Points, p.Kind)
	assert.Equal(t, []string{"Season 1"}, p.Columns)
	assert.Equal(t, 300.0, p.Totals.Total)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv, "/api/pivots/median", nil))
}
