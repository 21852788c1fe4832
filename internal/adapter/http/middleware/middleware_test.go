package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/pkg/translator"
)

func init() {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
}

func TestUserAndLanguageMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware(), middleware.UserMiddleware())
	router.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": middleware.GetUser(c), "lang": middleware.GetLang(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(middleware.UserHeader, "  emp-003 ")
	req.Header.Set("Accept-Language", "fr-CA,fr;q=0.9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user":"emp-003","lang":"fr"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.JSONEq(t, `{"user":"","lang":"en"}`, rec.Body.String())
}

func TestGinZapMiddleware_LogsByStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(middleware.GinZapMiddleware(zap.New(core)), middleware.UserMiddleware())
	router.GET("/tasks/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/tasks/t-1", "/tasks/missing", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(middleware.UserHeader, "emp-001")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, zap.InfoLevel, entries[0].Level)
	require.Equal(t, zap.WarnLevel, entries[1].Level)

	fields := entries[0].ContextMap()
	require.Equal(t, "/tasks/:id", fields["route"])
	require.Equal(t, "emp-001", fields["user_id"])
	require.EqualValues(t, http.StatusOK, fields["status"])
}
