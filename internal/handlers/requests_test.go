package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestsRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/requests", CreateRequest)
	r.PATCH("/api/requests/:id", UpdateRequestStatus)
	r.POST("/api/requests/:id/reply", ReplyRequest)
	return r
}

func TestCreateRequestMissingFields(t *testing.T) {
	r := requestsRouter()

	cases := []string{
		`{}`,
		`{"customerName":"Sipho"}`,
		`{"customerName":"Sipho","customerEmail":"sipho@example.com"}`,
		// Email manquant malgré un produit
		`{"customerName":"Sipho","productId":42}`,
	}

	for _, body := range cases {
		w := postJSON(t, r, http.MethodPost, "/api/requests", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "Missing required fields", body)
	}
}

func TestCreateRequestMalformedJSON(t *testing.T) {
	w := postJSON(t, requestsRouter(), http.MethodPost, "/api/requests", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplyRequestEmptyContent(t *testing.T) {
	r := requestsRouter()

	w := postJSON(t, r, http.MethodPost, "/api/requests/abc/reply", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message content is required")
}

func TestUpdateRequestStatusMalformedJSON(t *testing.T) {
	w := postJSON(t, requestsRouter(), http.MethodPatch, "/api/requests/abc", `nope`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
