package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emuats/recipely/backend/internal/testhelpers"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewTestDB(t)
	router := NewRouter(Options{
		DB:        db,
		JWTSecret: "test-secret",
	})
	return router, db
}

// registerUser registers through the real endpoint and returns the token
// and user id from the response.
func registerUser(t *testing.T, router *gin.Engine, name, email string) (string, string) {
	t.Helper()

	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	}
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	userID, _ := resp["user_id"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, userID)
	return token, userID
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// createRecipe creates a recipe through the real endpoint and returns its id.
func createRecipe(t *testing.T, router *gin.Engine, token, name string) string {
	t.Helper()

	body := map[string]interface{}{
		"name":         name,
		"description":  "test description",
		"instructions": "test instructions",
		"ingredients":  []string{"salt", "pepper"},
		"categories":   []string{"dinner"},
	}
	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	id, _ := resp["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
