package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"coffeeshop/internal/models"
)

func TestClassifyUserWriteNewUser(t *testing.T) {
	if got := classifyUserWrite(false, ""); got != actionInsert {
		t.Fatalf("expected insert for unknown email, got %v", got)
	}
	// Status on a first write still inserts; the branch only matters for
	// existing users.
	if got := classifyUserWrite(false, models.StatusRequested); got != actionInsert {
		t.Fatalf("expected insert for unknown email with status, got %v", got)
	}
}

func TestClassifyUserWriteRequestedStatus(t *testing.T) {
	if got := classifyUserWrite(true, models.StatusRequested); got != actionUpdateStatus {
		t.Fatalf("expected status-only update, got %v", got)
	}
}

func TestClassifyUserWriteExistingNoStatus(t *testing.T) {
	for _, status := range []string{"", "Verified", "admin"} {
		if got := classifyUserWrite(true, status); got != actionReturnExisting {
			t.Fatalf("status %q: expected no-op echo of existing doc, got %v", status, got)
		}
	}
}

func putUser(db *mongo.Database, mail Notifier, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.PUT("/user", UpsertUser(db, mail))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/user", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertUserFirstWriteQueuesOneWelcomeMail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("new user", func(mt *mtest.T) {
		// empty lookup, then the upsert ack
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "coffeeShopDb.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		notifier := &fakeNotifier{}
		w := putUser(mt.DB, notifier, `{"email": "a@x.com", "name": "A"}`)

		if w.Code != http.StatusOK {
			mt.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		if len(notifier.sent) != 1 {
			mt.Fatalf("expected exactly one welcome notification, got %d", len(notifier.sent))
		}
		if notifier.sent[0].to != "a@x.com" || notifier.sent[0].subject != "Welcome our coffee shop" {
			mt.Fatalf("unexpected welcome notification: %+v", notifier.sent[0])
		}
	})
}

func TestUpsertUserExistingWithoutStatusEchoesDocWithoutMail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("existing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "coffeeShopDb.users", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: "a@x.com"},
				{Key: "name", Value: "A"},
			}))

		notifier := &fakeNotifier{}
		w := putUser(mt.DB, notifier, `{"email": "a@x.com", "name": "A"}`)

		if w.Code != http.StatusOK {
			mt.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"email":"a@x.com"`) {
			mt.Fatalf("expected existing document echoed back, got %s", w.Body.String())
		}
		if len(notifier.sent) != 0 {
			mt.Fatalf("expected no notification for an existing user, got %d", len(notifier.sent))
		}
	})
}

func TestUpsertUserRequestedStatusUpdatesStatusOnly(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("requested status", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "coffeeShopDb.users", mtest.FirstBatch,
				bson.D{
					{Key: "_id", Value: primitive.NewObjectID()},
					{Key: "email", Value: "a@x.com"},
					{Key: "name", Value: "A"},
				}),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		notifier := &fakeNotifier{}
		w := putUser(mt.DB, notifier, `{"email": "a@x.com", "status": "`+models.StatusRequested+`"}`)

		if w.Code != http.StatusOK {
			mt.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"modifiedCount":1`) {
			mt.Fatalf("expected status update ack, got %s", w.Body.String())
		}
		if len(notifier.sent) != 0 {
			mt.Fatalf("expected no notification for a status update, got %d", len(notifier.sent))
		}
	})
}
