package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dbTimeout = 5 * time.Second

// Notifier queues a transactional email without surfacing delivery outcome
// to the caller. *mailer.Dispatcher is the production implementation.
type Notifier interface {
	Enqueue(to, subject, html string)
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// objectIDParam parses the named path parameter as a mongo ObjectID and
// answers 400 itself when the value is not valid hex.
func objectIDParam(c *gin.Context, route, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
