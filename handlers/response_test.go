package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseWithCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	ErrorResponseWithCode(c, http.StatusUnauthorized, "token 已過期", "Token has expired", "ERR_TOKEN_EXPIRED")

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, "token 已過期", resp.Message)
	assert.Equal(t, "Token has expired", resp.Error)
	assert.Equal(t, "ERR_TOKEN_EXPIRED", resp.Code)
}

func TestSuccessResponseOmitsErrorAndCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{"saved": true})

	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.NotContains(t, body, `"error"`)
	assert.NotContains(t, body, `"code"`)
	assert.Contains(t, body, `"saved":true`)
}
