package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-reconciliation-backend/internal/models"
	"payroll-reconciliation-backend/internal/services/matching"
	service "payroll-reconciliation-backend/internal/services/reconciliation"
)

const (
	databaseCSV    = "اسم الموظف,Iban\nاحمد محمد علي,IQ01\nسارة احمد خالد,IQ02\n"
	inputCSV       = "اسم الموظف,الدائرة\nأحمد محمد على,مدرسة النور الابتدائية\nمجهول,\n"
	accountantsCSV = "الدائرة,اليوزر,اسم المحاسب\nمدرسة النور,u1,كريم\n"
)

type upload struct {
	field, filename, content string
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReconciliationHandler(service.NewReconciliationService(matching.DefaultConfig, nil))
	r := gin.New()
	r.POST("/names", h.ReconcileNames)
	r.POST("/sections", h.ReconcileSections)
	r.POST("/link", h.LinkAccountants)
	return r
}

func post(t *testing.T, r *gin.Engine, target string, uploads ...upload) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, u := range uploads {
		fw, err := mw.CreateFormFile(u.field, u.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(u.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReconcileNamesJSON(t *testing.T) {
	r := setupRouter()

	w := post(t, r, "/names",
		upload{"database", "db.csv", databaseCSV},
		upload{"input", "names.csv", inputCSV},
		upload{"accountants", "acc.csv", accountantsCSV},
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Run-ID"))

	var resp struct {
		Run     models.ReconciliationRun `json:"run"`
		Results []models.EnrichedResult  `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Run.TotalRows)
	assert.Equal(t, 1, resp.Run.MatchedCount)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "IQ01", resp.Results[0].IBAN)
	assert.Equal(t, "u1", resp.Results[0].UserID)
	assert.Equal(t, models.StatusNotMatched, resp.Results[1].Status)
}

func TestReconcileNamesCSVDownload(t *testing.T) {
	r := setupRouter()

	w := post(t, r, "/names?format=csv",
		upload{"database", "db.csv", databaseCSV},
		upload{"input", "names.csv", inputCSV},
	)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	lines := strings.Split(strings.TrimSpace(string(body[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "الاسم الأصلي,الاسم المطابق,Iban,نسبة التطابق,حالة المطابقة,ملاحظة التكرار", lines[0])
	assert.Equal(t, "أحمد محمد على,احمد محمد علي,IQ01,100%,مطابق,", lines[1])
	assert.Equal(t, "مجهول,,,,غير مطابق,", lines[2])
}

func TestReconcileErrors(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name    string
		target  string
		uploads []upload
		status  int
		code    string
	}{
		{
			name:    "missing input file",
			target:  "/names",
			uploads: []upload{{"database", "db.csv", databaseCSV}},
			status:  http.StatusBadRequest,
			code:    "UNREADABLE_TABLE",
		},
		{
			name:    "missing name column",
			target:  "/names",
			uploads: []upload{{"database", "db.csv", databaseCSV}, {"input", "names.csv", "name\nx\n"}},
			status:  http.StatusUnprocessableEntity,
			code:    "MISSING_COLUMN",
		},
		{
			name:    "no database source",
			target:  "/names",
			uploads: []upload{{"input", "names.csv", inputCSV}},
			status:  http.StatusBadRequest,
			code:    "NO_DATABASE",
		},
		{
			name:    "unsupported file type",
			target:  "/sections",
			uploads: []upload{{"input", "names.pdf", inputCSV}},
			status:  http.StatusBadRequest,
			code:    "UNREADABLE_TABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, r, tt.target, tt.uploads...)
			assert.Equal(t, tt.status, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp["code"])
		})
	}
}

func TestReconcileMissingColumnNamesColumn(t *testing.T) {
	w := post(t, setupRouter(), "/names",
		upload{"database", "db.csv", "اسم الموظف\nاحمد\n"},
		upload{"input", "names.csv", inputCSV},
	)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "database", resp["table"])
	assert.Equal(t, "Iban", resp["column"])
}

func TestReconcileNoMatchesIsSuccess(t *testing.T) {
	w := post(t, setupRouter(), "/names",
		upload{"database", "db.csv", databaseCSV},
		upload{"input", "names.csv", "اسم الموظف\nمجهول\nغير موجود\n"},
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Run models.ReconciliationRun `json:"run"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Run.MatchedCount)
	assert.Equal(t, 2, resp.Run.NotMatchedCount)
}

func TestLinkAccountants(t *testing.T) {
	w := post(t, setupRouter(), "/link",
		upload{"results", "results.csv", "الاسم,الدائرة\nعلي,مدرسه النور\nحسن,قسم الحسابات\n"},
		upload{"accountants", "acc.csv", accountantsCSV},
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Headers []string   `json:"headers"`
		Rows    [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"الاسم", "الدائرة", "اليوزر", "اسم المحاسب"}, resp.Headers)
	assert.Equal(t, []string{"علي", "مدرسه النور", "u1", "كريم"}, resp.Rows[0])
	assert.Equal(t, []string{"حسن", "قسم الحسابات", "", ""}, resp.Rows[1])
}

func TestLinkAccountantsRequiresBothFiles(t *testing.T) {
	w := post(t, setupRouter(), "/link", upload{"accountants", "acc.csv", accountantsCSV})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
