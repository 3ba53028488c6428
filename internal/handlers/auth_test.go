package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"velora_storefront/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", Register)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterDuplicateCheck(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("email déjà pris", func(mt *mtest.T) {
		database.MongoDB = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "velora.users", mtest.FirstBatch,
			bson.D{{Key: "email", Value: "user@email.com"}}))

		w := postJSON(newAuthRouter(), "/register", `{"email":"user@email.com","password":"pw"}`)
		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "Email already exists")
	})

	// Une erreur Mongo pendant la vérification ne doit pas créer l'utilisateur.
	mt.Run("erreur Mongo pendant la vérification", func(mt *mtest.T) {
		database.MongoDB = mt.DB
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		w := postJSON(newAuthRouter(), "/register", `{"email":"new@email.com","password":"pw"}`)
		assert.Equal(mt, http.StatusInternalServerError, w.Code)
	})

	mt.Run("email libre", func(mt *mtest.T) {
		database.MongoDB = mt.DB
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "velora.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		w := postJSON(newAuthRouter(), "/register", `{"email":"new@email.com","password":"pw"}`)
		assert.Equal(mt, http.StatusCreated, w.Code)
		assert.Contains(mt, w.Body.String(), `"token"`)
	})
}
