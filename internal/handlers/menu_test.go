package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCreateMenuItemAllowsZeroPrice(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("free listing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		r := gin.New()
		r.POST("/coffee", CreateMenuItem(mt.DB))

		body := `{"name": "House Drip", "price": 0, "host": {"email": "host@x.com"}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/coffee", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			mt.Fatalf("expected 201 for an explicit zero price, got %d (%s)", w.Code, w.Body.String())
		}
	})
}

func TestCreateMenuItemMissingPriceRejected(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing price", func(mt *mtest.T) {
		r := gin.New()
		r.POST("/coffee", CreateMenuItem(mt.DB))

		body := `{"name": "House Drip", "host": {"email": "host@x.com"}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/coffee", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			mt.Fatalf("expected 400 without a price, got %d", w.Code)
		}
	})
}

func TestDeleteMenuItemUnknownIDReportsZeroAffected(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		r := gin.New()
		r.DELETE("/coffee/:id", DeleteMenuItem(mt.DB))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/coffee/"+primitive.NewObjectID().Hex(), nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			mt.Fatalf("expected 200 for unknown id, got %d (%s)", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"deletedCount":0`) {
			mt.Fatalf("expected zero-affected ack, got %s", w.Body.String())
		}
	})
}

func TestDeleteMenuItemInvalidIDRejected(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invalid id", func(mt *mtest.T) {
		r := gin.New()
		r.DELETE("/coffee/:id", DeleteMenuItem(mt.DB))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/coffee/not-hex", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			mt.Fatalf("expected 400 for malformed id, got %d", w.Code)
		}
	})
}
