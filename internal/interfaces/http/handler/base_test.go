package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handlerFn gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", handlerFn)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	var h BaseHandler

	w := performRequest(func(c *gin.Context) {
		h.Success(c, gin.H{"value": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_HandleError(t *testing.T) {
	var h BaseHandler

	t.Run("not found maps to 404", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			h.HandleError(c, shared.ErrNotFound)
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("concurrency conflict maps to 409", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			h.HandleError(c, shared.ErrConcurrencyConflict)
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeConcurrencyConflict, resp.Error.Code)
	})

	t.Run("consistency violation maps to 500", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			h.HandleError(c, shared.ErrConsistencyViolation)
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeConsistency, resp.Error.Code)
	})

	t.Run("field validation error maps to 400", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			h.HandleError(c, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive"))
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Amount must be positive", resp.Error.Message)
	})

	t.Run("unknown error maps to internal without leaking", func(t *testing.T) {
		w := performRequest(func(c *gin.Context) {
			h.HandleError(c, assert.AnError)
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
	})
}

func TestGetActor(t *testing.T) {
	t.Run("reads X-User header", func(t *testing.T) {
		router := gin.New()
		var actor string
		router.GET("/", func(c *gin.Context) {
			actor = getActor(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", "auditor")
		router.ServeHTTP(w, req)

		assert.Equal(t, "auditor", actor)
	})

	t.Run("defaults to system", func(t *testing.T) {
		router := gin.New()
		var actor string
		router.GET("/", func(c *gin.Context) {
			actor = getActor(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, "system", actor)
	})
}
