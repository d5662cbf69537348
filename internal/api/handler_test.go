package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-parser/internal/config"
	"github.com/insightdelivered/statement-parser/internal/logger"
	"github.com/insightdelivered/statement-parser/internal/parser"
)

const sampleStatement = "H1\nH2\nH3\nJane Doe\n123 Main St\nSpringfield IL\n" +
	"Deposits and Other Credits\nDate Description Amount\n01/02 PAYROLL 500.00\n" +
	"Withdrawals and Other Debits\nDate Description Amount\n" +
	"01/03 ATM WITHDRAWAL 40.00\n01/04 WAL-MART STORE 25.50\n" +
	"Account Service Charges and Fees"

func setupTestApp() *fiber.App {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, MaxUploadMB: 1},
		Layout: parser.DefaultLayout(),
	}
	return NewServer(cfg, nil)
}

func decode(t *testing.T, resp *http.Response) ParseResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ParseResponse
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, Version, result["version"])
}

func TestParseEndpoint_File(t *testing.T) {
	app := setupTestApp()

	body, contentType := multipartBody(t, "statement.txt", strings.ReplaceAll(sampleStatement, "\n", "\r\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode(t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, "Jane Doe", out.CustomerName)
	assert.Equal(t, "123 Main St, Springfield IL", out.Address)
	assert.Equal(t, "500.00", out.TotalDeposits)
	assert.Equal(t, "40.00", out.TotalATMWithdrawals)
	assert.Equal(t, []Purchase{{Date: "01/04", Amount: "25.50", Description: "WAL-MART STORE"}}, out.CategorizedPurchases)
	assert.True(t, out.Clean)
	assert.Equal(t, 14, out.LineCount)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestParseEndpoint_TextField(t *testing.T) {
	app := setupTestApp()

	form := url.Values{"text": {sampleStatement}}
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane Doe", decode(t, resp).CustomerName)
}

func TestParseEndpoint_PlainBody(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(sampleStatement))
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "500.00", decode(t, resp).TotalDeposits)
}

func TestParseEndpoint_CSV(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/parse?format=csv&header=false", strings.NewReader(sampleStatement))
	req.Header.Set("Content-Type", "text/plain")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Date,Description,Amount\n01/04,WAL-MART STORE,25.50\n", string(body))
}

func TestParseEndpoint_SkippedLines(t *testing.T) {
	app := setupTestApp()

	text := strings.Replace(sampleStatement, "500.00", "5OO.00", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(text))
	req.Header.Set("Content-Type", "text/plain")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode(t, resp)
	assert.False(t, out.Clean)
	assert.Equal(t, "0.00", out.TotalDeposits)
	require.Len(t, out.SkippedLines, 1)
	assert.Equal(t, 8, out.SkippedLines[0].LineNum)
}

func TestParseEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        io.Reader
		contentType string
		wantStatus  int
	}{
		{"no statement", nil, "application/json", fiber.StatusBadRequest},
		{"blank text body", strings.NewReader("  \n "), "text/plain", fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp()
			req := httptest.NewRequest(http.MethodPost, "/api/parse", tt.body)
			req.Header.Set("Content-Type", tt.contentType)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			out := decode(t, resp)
			assert.False(t, out.Success)
			assert.NotEmpty(t, out.Error)
		})
	}
}

func TestParseEndpoint_UnsupportedUpload(t *testing.T) {
	app := setupTestApp()

	body, contentType := multipartBody(t, "scan.png", "binary")
	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, resp).Error, "unsupported document format")
}

func TestUnknownRoute(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, decode(t, resp).Success)
}

func TestNewServer_UsesDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(&buf, logger.FormatJSON, "info")

	app := setupTestApp()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Contains(t, buf.String(), `"msg":"http_request"`)
	assert.Contains(t, buf.String(), `"path":"/api/health"`)
}
