package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	redisrepo "github.com/aroya-air/seatwise/internal/repository/redis"
	"github.com/aroya-air/seatwise/internal/service"
	"github.com/aroya-air/seatwise/internal/service/flights"
	"github.com/aroya-air/seatwise/internal/service/reservation"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/api/arrivals", handleArrivalCalendar(svcs))
	r.GET("/api/flights", handleSearchFlights(svcs))
	r.GET("/api/flights/:id", handleGetFlight(svcs))

	r.POST("/api/reservations", handleCreateReservation(svcs, idem))
	r.GET("/api/reservations/:id", handleGetReservation(svcs))
	r.PUT("/api/reservations/:id/seats", handleUpdateSeats(svcs, idem))

	// Admin API
	// TODO: add admin middleware
	admin := r.Group("/admin")
	{
		admin.POST("/flights", handleCreateFlight(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Arrival calendar
// @Success  200  {object}  flights.Calendar
// @Router   /api/arrivals [get]
func handleArrivalCalendar(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cal, err := svcs.Flights.ArrivalCalendar(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, cal, "public, max-age=60", true)
	}
}

// @Summary  Search flights
// @Param    departure_city   query  string  false  "departure city"
// @Param    arrival_city     query  string  false  "arrival city"
// @Param    departure_date   query  string  false  "YYYY-MM-DD"
// @Param    passengers       query  int     false  "passenger count"
// @Param    class_preference query  string  false  "seat class"
// @Success  200  {object}  Envelope
// @Failure  400  {object}  Envelope
// @Router   /api/flights [get]
func handleSearchFlights(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		crit := flights.Criteria{
			DepartureCity:   c.Query("departure_city"),
			ArrivalCity:     c.Query("arrival_city"),
			DepartureDate:   c.Query("departure_date"),
			Passengers:      parseIntDefault(c.Query("passengers"), 1),
			ClassPreference: c.Query("class_preference"),
		}

		res, err := svcs.Flights.Search(c.Request.Context(), crit)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, Envelope{
			OK:      true,
			Code:    res.Code,
			Message: res.Message,
			Data:    res,
		})
	}
}

// @Summary  Flight details
// @Param    id  path  string  true  "Flight ID"
// @Success  200  {object}  Envelope
// @Failure  404  {object}  Envelope
// @Router   /api/flights/{id} [get]
func handleGetFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := svcs.Flights.GetFlight(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, Envelope{
			OK:      true,
			Code:    "FLIGHT_FOUND",
			Message: "Flight retrieved.",
			Data:    f,
		})
	}
}

// @Summary  Create reservation (preview or confirm, idempotent)
// @Param    req body  CreateReservationRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  200 {object} Envelope "preview"
// @Success  201 {object} Envelope "confirmed"
// @Failure  400 {object} Envelope
// @Failure  404 {object} Envelope
// @Failure  409 {object} Envelope
// @Failure  429 {object} Envelope "rate limited"
// @Router   /api/reservations [post]
func handleCreateReservation(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "RESERVATION_INVALID_INPUT", err.Error())
			return
		}

		// Only confirmed bookings mutate state; previews skip idempotency.
		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" && req.Confirm {
			idemStorageKey = redisrepo.KeyIdemReservation(idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, Envelope{
					OK:      false,
					Code:    "IDEMPOTENCY_IN_PROGRESS",
					Message: "A request with this idempotency key is in progress.",
				})
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		out, err := svcs.Reservation.Create(c.Request.Context(), req.toInput(), rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			var rl *reservation.RateLimitedError
			if errors.As(err, &rl) {
				c.Header("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds())+1))
				c.JSON(http.StatusTooManyRequests, Envelope{
					OK:      false,
					Code:    "RATE_LIMITED",
					Message: "Too many booking attempts. Please slow down.",
				})
				return
			}
			respondErr(c, err)
			return
		}

		if !out.Confirmed {
			c.JSON(http.StatusOK, Envelope{
				OK:      true,
				Code:    "RESERVATION_PREVIEW",
				Message: "Preview generated. Provide any missing/invalid passenger details, then confirm to book.",
				Data:    out.Preview,
			})
			return
		}

		env := Envelope{
			OK:      true,
			Code:    "RESERVATION_CONFIRMED",
			Message: "Your reservation is confirmed.",
			Data:    out.Payload,
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(env)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, env)
	}
}

// @Summary  Get reservation
// @Param    id  path  string  true  "Reservation ID"
// @Success  200  {object}  Envelope
// @Failure  404  {object}  Envelope
// @Router   /api/reservations/{id} [get]
func handleGetReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := svcs.Reservation.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}

		env := Envelope{
			OK:      true,
			Code:    "RESERVATION_FOUND",
			Message: "Reservation retrieved.",
			Data:    payload,
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, env, "private, max-age=15", true)
	}
}

// @Summary  Update seat selection (idempotent)
// @Param    id  path  string  true  "Reservation ID"
// @Param    req body  UpdateSeatsRequest true "payload"
// @Success  200 {object} Envelope
// @Failure  404 {object} Envelope
// @Router   /api/reservations/{id}/seats [put]
func handleUpdateSeats(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		reservationID := c.Param("id")

		var req UpdateSeatsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "SEAT_SELECTION_INVALID_INPUT", err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemSeats(reservationID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusOK,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				30*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if inProgress, _ := idem.IsLocked(c.Request.Context(), idemStorageKey); inProgress {
					c.Header("Retry-After", "1")
					c.JSON(http.StatusConflict, Envelope{
						OK:      false,
						Code:    "IDEMPOTENCY_IN_PROGRESS",
						Message: "A request with this idempotency key is in progress.",
					})
					return
				}
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusOK,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, Envelope{
					OK:      false,
					Code:    "IDEMPOTENCY_IN_PROGRESS",
					Message: "A request with this idempotency key is in progress.",
				})
				return
			}
		}

		payload, err := svcs.Reservation.UpdateSeats(
			c.Request.Context(),
			reservationID,
			req.Seats,
		)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		env := Envelope{
			OK:      true,
			Code:    "SEAT_SELECTION_UPDATED",
			Message: "Seat selection updated.",
			Data:    payload,
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(env)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusOK, env)
	}
}

// @Summary  Add flight to catalog
// @Param    req body  FlightInput true "payload"
// @Success  201 {object} Envelope
// @Failure  409 {object} Envelope
// @Router   /admin/flights [post]
func handleCreateFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FlightInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "FLIGHT_INVALID_INPUT", err.Error())
			return
		}

		f, err := req.toDomain()
		if err != nil {
			badRequest(c, "FLIGHT_INVALID_INPUT", "invalid departure_time/arrival_time (RFC3339)")
			return
		}

		if err := svcs.Flights.CreateFlight(c.Request.Context(), f); err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, Envelope{
			OK:      true,
			Code:    "FLIGHT_CREATED",
			Message: "Flight added to catalog.",
			Data:    gin.H{"flight_id": f.FlightID},
		})
	}
}

// --- Helpers ---

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, Envelope{OK: false, Code: code, Message: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var (
		invalidCriteria *flights.InvalidCriteriaError
		unbookable      *reservation.UnbookableError
		classMissing    *reservation.ClassNotAvailableError
		noSeats         *reservation.NoSeatsError
		validation      *reservation.ValidationError
	)

	switch {
	// flights service
	case errors.As(err, &invalidCriteria):
		c.JSON(http.StatusBadRequest, Envelope{
			OK:      false,
			Code:    "FLIGHT_SEARCH_INVALID_INPUT",
			Message: "Invalid search criteria.",
			Data:    gin.H{"error": invalidCriteria.Detail},
		})
		return
	case errors.Is(err, flights.ErrFlightExists):
		c.JSON(http.StatusConflict, Envelope{
			OK:      false,
			Code:    "FLIGHT_ALREADY_EXISTS",
			Message: "A flight with this ID already exists.",
		})
		return
	case errors.Is(err, flights.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, Envelope{
			OK:      false,
			Code:    "FLIGHT_NOT_FOUND",
			Message: "Flight not found.",
		})
		return
	// reservation service
	case errors.Is(err, reservation.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, Envelope{
			OK:      false,
			Code:    "RESERVATION_FLIGHT_NOT_FOUND",
			Message: "Flight not found.",
		})
		return
	case errors.Is(err, reservation.ErrReservationIDEmpty):
		c.JSON(http.StatusBadRequest, Envelope{
			OK:      false,
			Code:    "RESERVATION_ID_REQUIRED",
			Message: "Reservation ID is required.",
		})
		return
	case errors.Is(err, reservation.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, Envelope{
			OK:      false,
			Code:    "RESERVATION_NOT_FOUND",
			Message: "Reservation not found.",
		})
		return
	case errors.As(err, &unbookable):
		c.JSON(http.StatusConflict, Envelope{
			OK:      false,
			Code:    "RESERVATION_UNBOOKABLE",
			Message: "Flight status is '" + unbookable.Status + "'. Not bookable.",
		})
		return
	case errors.As(err, &classMissing):
		c.JSON(http.StatusConflict, Envelope{
			OK:      false,
			Code:    "RESERVATION_CLASS_NOT_AVAILABLE",
			Message: "Seat class '" + classMissing.Class + "' not available for this flight.",
			Data:    gin.H{"available": classMissing.Available},
		})
		return
	case errors.As(err, &noSeats):
		c.JSON(http.StatusConflict, Envelope{
			OK:      false,
			Code:    "RESERVATION_NO_SEATS",
			Message: noSeats.Error(),
		})
		return
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, Envelope{
			OK:      false,
			Code:    "RESERVATION_VALIDATION_FAILED",
			Message: "Passenger details failed validation. Please correct before confirming.",
			Data: gin.H{
				"passenger_count": validation.PassengerCount,
				"provided_valid":  validation.ProvidedValid,
				"issues":          validation.Issues,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Envelope{
		OK:      false,
		Code:    "INTERNAL_ERROR",
		Message: "Something went wrong. Please try again.",
	})
}
