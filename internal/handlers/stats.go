package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coffeeshop/internal/database"
)

type bookingPrice struct {
	Price float64 `bson:"price"`
}

func sumPrices(prices []bookingPrice) float64 {
	var total float64
	for _, p := range prices {
		total += p.Price
	}
	return total
}

// buildChartData folds booking prices into the frontend's charting series:
// a "sales" header row followed by one single-value row per booking.
func buildChartData(prices []bookingPrice) [][]any {
	chart := make([][]any, 0, len(prices)+1)
	chart = append(chart, []any{"sales"})
	for _, p := range prices {
		chart = append(chart, []any{p.Price})
	}
	return chart
}

// AdminStats scans every booking's price plus the user and menu counts. No
// pagination: the whole bookings collection is read on each call.
func AdminStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin-stat"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		bookings := db.Collection(database.BookingsCollection)
		cursor, err := bookings.Find(ctx, bson.M{},
			options.Find().SetProjection(bson.M{"price": 1}))
		if err != nil {
			log.Printf("[%s] bookings find failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		prices := make([]bookingPrice, 0)
		if err := cursor.All(ctx, &prices); err != nil {
			log.Printf("[%s] bookings decode failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		totalUser, err := db.Collection(database.UsersCollection).CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Printf("[%s] user count failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		totalCoffee, err := db.Collection(database.MenuCollection).CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Printf("[%s] menu count failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalUser":     totalUser,
			"totalCoffee":   totalCoffee,
			"totalBookings": len(prices),
			"totalPrice":    sumPrices(prices),
			"chartData":     buildChartData(prices),
		})
	}
}

// HostStats returns global estimated counts. Despite the name it does not
// filter by host; the per-host version never shipped, so this preserves the
// unfiltered figures the dashboard already consumes.
func HostStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /host-stat"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
		defer cancel()

		users, err := estimatedCount(ctx, db, database.UsersCollection)
		if err != nil {
			log.Printf("[%s] user count failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		bookings, err := estimatedCount(ctx, db, database.BookingsCollection)
		if err != nil {
			log.Printf("[%s] booking count failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		totalCoffee, err := estimatedCount(ctx, db, database.MenuCollection)
		if err != nil {
			log.Printf("[%s] menu count failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":       users,
			"bookings":    bookings,
			"totalCoffee": totalCoffee,
		})
	}
}

func estimatedCount(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	return db.Collection(name).EstimatedDocumentCount(ctx)
}
