package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coffeeshop/internal/database"
	"coffeeshop/internal/models"
)

type menuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	// Pointer so an explicit zero price (a free listing) passes the
	// required check.
	Price *float64        `json:"price" binding:"required"`
	Image string          `json:"image"`
	Host  models.HostInfo `json:"host" binding:"required"`
}

type menuItemUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Booked      *bool    `json:"booked"`
}

func GetMenus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menus"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		cursor, err := db.Collection(database.MenuCollection).Find(ctx, bson.M{})
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		items := make([]models.MenuItem, 0)
		if err := cursor.All(ctx, &items); err != nil {
			log.Printf("[%s] decode failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func GetMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu/:id"
		defer handlePanic(c, route)

		id, ok := objectIDParam(c, route, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		var item models.MenuItem
		err := db.Collection(database.MenuCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&item)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				respondWithError(c, http.StatusNotFound, route, "menu item not found")
				return
			}
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

func CreateMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /coffee"
		defer handlePanic(c, route)

		var req menuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[%s] invalid body: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if strings.TrimSpace(req.Host.Email) == "" {
			respondWithError(c, http.StatusBadRequest, route, "host email is required")
			return
		}

		item := models.MenuItem{
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			Category:    strings.TrimSpace(req.Category),
			Price:       *req.Price,
			Image:       req.Image,
			Host:        req.Host,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection(database.MenuCollection).InsertOne(ctx, item)
		if err != nil {
			log.Printf("[%s] insert failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		log.Printf("[%s] menu item created: %v", route, res.InsertedID)
		c.JSON(http.StatusCreated, gin.H{"insertedId": res.InsertedID})
	}
}

func UpdateMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /coffee/update/:id"
		defer handlePanic(c, route)

		id, ok := objectIDParam(c, route, "id")
		if !ok {
			return
		}

		var req menuItemUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[%s] invalid body: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		set := bson.M{}
		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Category != nil {
			set["category"] = strings.TrimSpace(*req.Category)
		}
		if req.Price != nil {
			set["price"] = *req.Price
		}
		if req.Image != nil {
			set["image"] = *req.Image
		}
		if req.Booked != nil {
			set["booked"] = *req.Booked
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection(database.MenuCollection).UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			log.Printf("[%s] update failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"matchedCount":  res.MatchedCount,
			"modifiedCount": res.ModifiedCount,
		})
	}
}

// DeleteMenuItem removes one listing. An unknown id is not an error: the
// response just carries deletedCount 0.
func DeleteMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /coffee/:id"
		defer handlePanic(c, route)

		id, ok := objectIDParam(c, route, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection(database.MenuCollection).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Printf("[%s] delete failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletedCount": res.DeletedCount})
	}
}

func GetMyListings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /my-listings/:email"
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("email"))
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		cursor, err := db.Collection(database.MenuCollection).Find(ctx, bson.M{"host.email": email})
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		items := make([]models.MenuItem, 0)
		if err := cursor.All(ctx, &items); err != nil {
			log.Printf("[%s] decode failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}
