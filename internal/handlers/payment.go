package handlers

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"coffeeshop/internal/payments"
)

type paymentIntentRequest struct {
	// Price arrives as either a JSON number or a decimal string depending
	// on the frontend form state.
	Price any `json:"price"`
}

// priceToMinorUnits converts a decimal price into integer minor currency
// units. Amounts that round below one cent are rejected, matching the
// processor's minimum charge.
func priceToMinorUnits(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	cents := price * 100
	if cents < 1 {
		return 0, false
	}
	return int64(math.Round(cents)), true
}

func rawPrice(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	case json.Number:
		return p.String()
	default:
		return ""
	}
}

// CreatePaymentIntent requests a client secret for the posted price. A
// missing or sub-minimum price answers 204 with no body; clients treat the
// absent clientSecret as "no intent created". (Whether this should be an
// explicit error instead is an open product question; the silent no-body
// contract is what the checkout frontend expects today.)
func CreatePaymentIntent(intents payments.IntentCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /create-payment-intent"
		defer handlePanic(c, route)

		var req paymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusNoContent)
			return
		}

		amount, ok := priceToMinorUnits(rawPrice(req.Price))
		if !ok {
			log.Printf("[%s] rejected price %v", route, req.Price)
			c.Status(http.StatusNoContent)
			return
		}

		secret, err := intents.CreateIntent(c.Request.Context(), amount)
		if err != nil {
			log.Printf("[%s] intent creation failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
	}
}
