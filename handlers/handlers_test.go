package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	catalog  *services.Catalog
	sessions *services.WizardSessionService
	quotes   *services.QuoteService
	router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	catalog := services.DefaultCatalog()
	env := &testEnv{
		catalog:  catalog,
		sessions: services.NewWizardSessionService(catalog, models.Reais(200), time.Hour),
		quotes: services.NewQuoteService(services.NewMemoryQuoteRepository(), catalog, nil, services.QuoteOptions{
			Discount:       models.Reais(200),
			WhatsAppNumber: "551123628799",
		}),
		router: gin.New(),
	}

	survey := NewSurveyHandler(env.catalog, env.sessions, env.quotes)
	env.router.GET("/catalog", survey.GetCatalog)
	env.router.POST("/budget", survey.CalculateBudget)
	env.router.POST("/sessions", survey.CreateSession)
	env.router.GET("/sessions/:id", survey.GetSession)
	env.router.POST("/sessions/:id/actions", survey.ApplyAction)
	env.router.DELETE("/sessions/:id", survey.DeleteSession)

	simulator := NewSimulatorHandler(env.catalog)
	env.router.GET("/simulator/thickness", simulator.Thickness)

	quotes := NewQuoteHandler(env.quotes)
	env.router.POST("/quotes", quotes.Create)
	env.router.GET("/quotes", quotes.List)
	env.router.GET("/quotes/:id", quotes.Get)
	env.router.GET("/quotes/:id/pdf", quotes.PDF)

	return env
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func strPtr(s string) *string { return &s }
