package common

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorInfo {
	t.Helper()
	var body struct {
		Error ErrorInfo `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestErrorResponse_DetailsOutsideRelease(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	ErrorResponse(c, 400, "Invalid post ID", errors.New("strconv.ParseInt: parsing \"x\""))

	got := errorBody(t, rec)
	assert.Equal(t, "BAD_REQUEST", got.Code)
	assert.Equal(t, "Invalid post ID", got.Message)
	assert.Contains(t, got.Details, "strconv.ParseInt")
}

func TestErrorResponse_NoDetailsInRelease(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	ErrorResponse(c, 404, "Post not found", errors.New("record not found"))

	got := errorBody(t, rec)
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Empty(t, got.Details)
}
