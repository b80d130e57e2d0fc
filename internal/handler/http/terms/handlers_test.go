package terms_test

import (
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calphad-sn/internal/domain/gibbs"
	"calphad-sn/internal/handler/http/terms"
	"calphad-sn/internal/infra/csvio"
	termsUC "calphad-sn/internal/usecase/terms"
)

func newMux(maxRows int) *http.ServeMux {
	mux := http.NewServeMux()
	svc := termsUC.NewService(gibbs.BCTSn, maxRows, slog.New(slog.NewTextHandler(io.Discard, nil)))
	terms.Register(mux, svc)
	return mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestListHandler_Defaults(t *testing.T) {
	rec := get(newMux(0), "/terms")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got terms.TableDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 298.0, got.Start)
	assert.Equal(t, 495.0, got.End)
	assert.Equal(t, 30.0, got.Step)
	assert.Equal(t, csvio.TermTableHeader, got.Columns)
	require.Len(t, got.Rows, 7)
	assert.Equal(t, 298.0, got.Rows[0].Temperature)
	assert.Equal(t, 478.0, got.Rows[6].Temperature)

	want, err := gibbs.BCTSn.Decompose(298)
	require.NoError(t, err)
	if diff := cmp.Diff(want.Terms[:], got.Rows[0].Terms); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, want.Total, got.Rows[0].Total)
}

func TestListHandler_CustomRange(t *testing.T) {
	rec := get(newMux(0), "/terms?start=300&end=400&step=50")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got terms.TableDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Rows, 3)
	for i, temp := range []float64{300, 350, 400} {
		assert.Equal(t, temp, got.Rows[i].Temperature)
		sum := 0.0
		for _, v := range got.Rows[i].Terms {
			sum += v
		}
		assert.InDelta(t, got.Rows[i].Total, sum, 1e-9)
	}
}

func TestListHandler_Errors(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		maxRows     int
		wantStatus  int
		wantMessage string
	}{
		{"non-numeric start", "/terms?start=warm", 0, http.StatusBadRequest, "start"},
		{"empty step uses default", "/terms?step=", 0, http.StatusOK, ""},
		{"reversed range", "/terms?start=500&end=300", 0, http.StatusBadRequest, "start"},
		{"zero step", "/terms?step=0", 0, http.StatusBadRequest, "step"},
		{"negative start", "/terms?start=-1", 0, http.StatusBadRequest, "start"},
		{"too many rows", "/terms?start=1&end=1000&step=1", 100, http.StatusBadRequest, "too many rows"},
		{"overflow", "/terms?start=1e200&end=1e201&step=1e200", 0, http.StatusUnprocessableEntity, "not finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(newMux(tt.maxRows), tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantMessage != "" {
				assert.Contains(t, decodeError(t, rec), tt.wantMessage)
			}
		})
	}
}

func TestCSVHandler(t *testing.T) {
	rec := get(newMux(0), "/terms/csv")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="gibbs_terms_sn_BCT.csv"`, rec.Header().Get("Content-Disposition"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, strings.Join(csvio.TermTableHeader, ",")+"\n"))

	got, err := csvio.ReadTermTable(strings.NewReader(body))
	require.NoError(t, err)
	want, err := gibbs.BCTSn.Table(gibbs.DefaultStart, gibbs.DefaultEnd, gibbs.DefaultStep)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("csv round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVHandler_InvalidRange(t *testing.T) {
	rec := get(newMux(0), "/terms/csv?end=100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestHandlers_NotFinite(t *testing.T) {
	const query = "?start=1e200&end=1e201&step=1e200"
	for _, path := range []string{"/terms", "/terms/csv", "/terms/chart"} {
		t.Run(path, func(t *testing.T) {
			rec := get(newMux(0), path+query)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Empty(t, rec.Header().Get("Content-Disposition"))
			assert.Contains(t, decodeError(t, rec), "not finite at 1e+200 K")
		})
	}
}

func TestChartHandler(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		rec := get(newMux(0), "/terms/chart")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		_, err := png.Decode(rec.Body)
		assert.NoError(t, err)
	})

	t.Run("svg", func(t *testing.T) {
		rec := get(newMux(0), "/terms/chart?format=svg&start=300&end=400&step=10")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "Total Energy")
	})

	t.Run("unknown format", func(t *testing.T) {
		rec := get(newMux(0), "/terms/chart?format=bmp")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "format")
	})

	t.Run("single temperature", func(t *testing.T) {
		rec := get(newMux(0), "/terms/chart?start=298&end=300&step=30")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeError(t, rec), "two distinct temperatures")
	})
}
