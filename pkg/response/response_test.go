package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestOK_WritesBareData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, []int{1, 2})

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	if w.Body.String() != "[1,2]" {
		t.Errorf("成功响应不应包裹，实际 %s", w.Body.String())
	}
}

func TestValidationFailed(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationFailed(c, errors.New("name is required"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
	if !c.IsAborted() {
		t.Error("错误响应应中止后续处理")
	}
	var body ErrorBody
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Code != 10001 || body.Details != "name is required" {
		t.Errorf("错误体不正确: %+v", body)
	}
}

func TestNoContent(t *testing.T) {
	r := gin.New()
	r.DELETE("/x", func(c *gin.Context) { NoContent(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/x", nil))

	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("期望 204 空响应，实际 %d %q", w.Code, w.Body.String())
	}
}
