package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Les tests ci-dessous couvrent la validation des entrées, qui se fait
// avant tout accès base : ils tournent sans ScyllaDB.

func ordersRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/orders", CreateOrder)
	r.GET("/api/orders", ListOrders)
	r.GET("/api/orders/:id", GetOrder)
	r.PATCH("/api/orders/:id", UpdateOrderStatus)
	r.POST("/api/orders/:id/upload-pop", UploadPOP)
	r.POST("/api/orders/:id/reply", ReplyOrder)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderMissingFields(t *testing.T) {
	r := ordersRouter()

	cases := []string{
		`{}`,
		`{"customerName":"Jane"}`,
		`{"customerName":"Jane","customerEmail":"jane@example.com","customerPhone":"0820000000"}`,
		// Adresse présente mais panier vide
		`{"customerName":"Jane","customerEmail":"jane@example.com","customerPhone":"0820000000","customerAddress":"1 Main Rd","items":[]}`,
	}

	for _, body := range cases {
		w := postJSON(t, r, http.MethodPost, "/api/orders", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "Missing required fields", body)
	}
}

func TestCreateOrderMalformedJSON(t *testing.T) {
	w := postJSON(t, ordersRouter(), http.MethodPost, "/api/orders", `{"customerName":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplyOrderEmptyContent(t *testing.T) {
	r := ordersRouter()

	w := postJSON(t, r, http.MethodPost, "/api/orders/HR123/reply", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message content is required")

	w = postJSON(t, r, http.MethodPost, "/api/orders/HR123/reply", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func popUploadTo(t *testing.T, r *gin.Engine, idOrNumber, contentType string, size int) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="proof.bin"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+idOrNumber+"/upload-pop", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

func popUpload(t *testing.T, contentType string, size int) *httptest.ResponseRecorder {
	t.Helper()
	return popUploadTo(t, ordersRouter(), "HR123", contentType, size)
}

func TestUploadPOPNoFile(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/HR123/upload-pop", nil)
	ordersRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file provided")
}

func TestUploadPOPInvalidType(t *testing.T) {
	w := popUpload(t, "image/gif", 100)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only JPEG, PNG, and PDF files are allowed")

	w = popUpload(t, "application/zip", 100)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadPOPTooLarge(t *testing.T) {
	w := popUpload(t, "application/pdf", popMaxSize+1)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File size exceeds 5MB limit")
}

func TestUploadPOPAllowedTypes(t *testing.T) {
	// Les quatre types MIME admis doivent passer la validation fichier ;
	// sans base de test on n'attend pas de 400 sur ces types
	for mime := range popAllowedTypes {
		w := popUpload(t, mime, 100)
		assert.NotContains(t, w.Body.String(), "Only JPEG, PNG, and PDF files are allowed", mime)
	}
}

func TestPopFilename(t *testing.T) {
	// L'extension cliente n'est reprise que si elle est elle-même admise ;
	// sinon celle du type MIME validé. Jamais de .html ou .php servi
	// depuis /uploads.
	name := popFilename("HR123", "proof.html", "image/png")
	assert.True(t, strings.HasPrefix(name, "pop_HR123_"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	name = popFilename("HR123", "payment.php", "application/pdf")
	assert.True(t, strings.HasSuffix(name, ".pdf"), name)

	// Extension cliente admise : conservée, casse normalisée
	name = popFilename("HR123", "photo.JPEG", "image/jpeg")
	assert.True(t, strings.HasSuffix(name, ".jpeg"), name)

	// Pas d'extension cliente : celle du type MIME
	name = popFilename("HR123", "proof", "application/pdf")
	assert.True(t, strings.HasSuffix(name, ".pdf"), name)
}

func TestUpdateOrderStatusMalformedJSON(t *testing.T) {
	w := postJSON(t, ordersRouter(), http.MethodPatch, "/api/orders/HR123", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
