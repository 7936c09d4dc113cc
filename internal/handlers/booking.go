package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"coffeeshop/internal/database"
	"coffeeshop/internal/models"
)

type bookingRequest struct {
	CoffeeID      string           `json:"coffeeId" binding:"required"`
	CoffeeName    string           `json:"coffeeName"`
	Guest         models.GuestInfo `json:"guest" binding:"required"`
	Host          models.HostInfo  `json:"host" binding:"required"`
	TransactionID string           `json:"transactionId" binding:"required"`
	Price         float64          `json:"price"`
}

// CreateBooking inserts the booking, queues the guest and host
// notifications, then marks the referenced menu item booked. The insert and
// the availability update are two independent writes with no transaction
// around them: a crash in between leaves a booking whose item still shows
// available. Notification outcomes never affect the response.
func CreateBooking(db *mongo.Database, mail Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /bookings"
		defer handlePanic(c, route)

		var req bookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[%s] invalid body: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if strings.TrimSpace(req.Guest.Email) == "" || strings.TrimSpace(req.Host.Email) == "" {
			respondWithError(c, http.StatusBadRequest, route, "guest and host email are required")
			return
		}

		coffeeID, err := primitive.ObjectIDFromHex(req.CoffeeID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid coffee id")
			return
		}

		booking := models.Booking{
			CoffeeID:      req.CoffeeID,
			CoffeeName:    strings.TrimSpace(req.CoffeeName),
			Guest:         req.Guest,
			Host:          req.Host,
			TransactionID: req.TransactionID,
			Price:         req.Price,
			Date:          time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection(database.BookingsCollection).InsertOne(ctx, booking)
		if err != nil {
			log.Printf("[%s] insert failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		mail.Enqueue(req.Guest.Email, "booking successful!",
			fmt.Sprintf("You have successfully booked a room through Coffee Shop BD. Transaction Id: %s", req.TransactionID))
		mail.Enqueue(req.Host.Email, "Your Coffee got ordered!",
			fmt.Sprintf("Get ready to welcome %s", req.Guest.Name))

		updateRes, err := db.Collection(database.MenuCollection).UpdateByID(ctx, coffeeID,
			bson.M{"$set": bson.M{"booked": true}})
		if err != nil {
			log.Printf("[%s] availability update failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		log.Printf("[%s] booking created: %v coffee=%s", route, res.InsertedID, req.CoffeeID)
		c.JSON(http.StatusCreated, gin.H{
			"result": gin.H{"insertedId": res.InsertedID},
			"updateCoffee": gin.H{
				"matchedCount":  updateRes.MatchedCount,
				"modifiedCount": updateRes.ModifiedCount,
			},
		})
	}
}

func GetMyBookings(db *mongo.Database) gin.HandlerFunc {
	return bookingsByEmail(db, "GET /my-bookings/:email", "guest.email")
}

func GetManageBookings(db *mongo.Database) gin.HandlerFunc {
	return bookingsByEmail(db, "GET /manage-bookings/:email", "host.email")
}

func bookingsByEmail(db *mongo.Database, route, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		email := strings.TrimSpace(c.Param("email"))
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		cursor, err := db.Collection(database.BookingsCollection).Find(ctx, bson.M{field: email})
		if err != nil {
			log.Printf("[%s] find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		bookings := make([]models.Booking, 0)
		if err := cursor.All(ctx, &bookings); err != nil {
			log.Printf("[%s] decode failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}

// DeleteBooking removes the booking document only. The referenced menu item
// keeps booked=true; availability is not reverted.
func DeleteBooking(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /booking/:id"
		defer handlePanic(c, route)

		id, ok := objectIDParam(c, route, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		res, err := db.Collection(database.BookingsCollection).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Printf("[%s] delete failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletedCount": res.DeletedCount})
	}
}
