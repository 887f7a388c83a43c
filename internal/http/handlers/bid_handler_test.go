package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBidHandler_Award_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &BidHandler{}
	r.POST("/bids/:id/award", handler.Award)

	req, _ := http.NewRequest("POST", "/bids/"+validUUID+"/award", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBidHandler_Place_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &BidHandler{}
	r.POST("/projects/:id/bids", handler.Place)

	body := strings.NewReader(`{"amount": 100, "description": "тест"}`)
	req, _ := http.NewRequest("POST", "/projects/"+validUUID+"/bids", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBidHandler_ListMy_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &BidHandler{}
	r.GET("/bids/my", handler.ListMy)

	req, _ := http.NewRequest("GET", "/bids/my", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

const validUUID = "3f2b8c1e-9d4a-4f6b-8a2c-1e5d7f9b0a3c"
