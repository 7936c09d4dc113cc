package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coffeeshop/internal/database"
	"coffeeshop/internal/models"
)

type userRequest struct {
	Email  string `json:"email" binding:"required"`
	Name   string `json:"name"`
	Photo  string `json:"photo"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type userUpdateRequest struct {
	Name   *string `json:"name"`
	Photo  *string `json:"photo"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

type userWriteAction int

const (
	actionInsert userWriteAction = iota
	actionUpdateStatus
	actionReturnExisting
)

// classifyUserWrite picks the branch for PUT /user: a brand-new email is
// upserted in full, an existing user asking for host access ("Requested")
// gets a status-only update, and any other write against an existing user
// is a no-op that echoes the stored document.
func classifyUserWrite(exists bool, status string) userWriteAction {
	if !exists {
		return actionInsert
	}
	if status == models.StatusRequested {
		return actionUpdateStatus
	}
	return actionReturnExisting
}

// UpsertUser handles the three-way save-user flow. Only the first-ever write
// for an email triggers the welcome mail.
func UpsertUser(db *mongo.Database, mail Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user"
		defer handlePanic(c, route)

		var req userRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[%s] invalid body: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		email := strings.TrimSpace(req.Email)
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		users := db.Collection(database.UsersCollection)
		query := bson.M{"email": email}

		var existing models.User
		err := users.FindOne(ctx, query).Decode(&existing)
		exists := err == nil
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			log.Printf("[%s] lookup failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		switch classifyUserWrite(exists, req.Status) {
		case actionUpdateStatus:
			res, err := users.UpdateOne(ctx, query, bson.M{"$set": bson.M{"status": req.Status}})
			if err != nil {
				log.Printf("[%s] status update failed: %v", route, err)
				respondWithError(c, http.StatusInternalServerError, route, "internal server error")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"matchedCount":  res.MatchedCount,
				"modifiedCount": res.ModifiedCount,
			})

		case actionReturnExisting:
			c.JSON(http.StatusOK, existing)

		case actionInsert:
			now := time.Now()
			set := bson.M{
				"email":     email,
				"createdAt": now,
				"updatedAt": now,
			}
			if req.Name != "" {
				set["name"] = strings.TrimSpace(req.Name)
			}
			if req.Photo != "" {
				set["photo"] = req.Photo
			}
			if req.Role != "" {
				set["role"] = req.Role
			}
			if req.Status != "" {
				set["status"] = req.Status
			}

			res, err := users.UpdateOne(ctx, query, bson.M{"$set": set}, options.Update().SetUpsert(true))
			if err != nil {
				log.Printf("[%s] upsert failed: %v", route, err)
				respondWithError(c, http.StatusInternalServerError, route, "internal server error")
				return
			}

			mail.Enqueue(email, "Welcome our coffee shop",
				"Visit Our Shop and order your favorite Coffee")

			log.Printf("[%s] user created: %s", route, email)
			c.JSON(http.StatusOK, gin.H{
				"matchedCount":  res.MatchedCount,
				"modifiedCount": res.ModifiedCount,
				"upsertedId":    res.UpsertedID,
			})
		}
	}
}

func GetUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/:email"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("email"))
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		var user models.User
		err := db.Collection(database.UsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				respondWithError(c, http.StatusNotFound, route, "user not found")
				return
			}
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		cursor, err := db.Collection(database.UsersCollection).Find(ctx, bson.M{})
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			log.Printf("[%s] decode failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// UpdateUser applies an admin edit (typically a role change) to the user
// registered under the path email.
func UpdateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /users/update/:email"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("email"))
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		var req userUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[%s] invalid body: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Photo != nil {
			set["photo"] = *req.Photo
		}
		if req.Role != nil {
			set["role"] = *req.Role
		}
		if req.Status != nil {
			set["status"] = *req.Status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection(database.UsersCollection).UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
		if err != nil {
			log.Printf("[%s] update failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		log.Printf("[%s] user updated: %s matched=%d", route, email, res.MatchedCount)
		c.JSON(http.StatusOK, gin.H{
			"matchedCount":  res.MatchedCount,
			"modifiedCount": res.ModifiedCount,
		})
	}
}
