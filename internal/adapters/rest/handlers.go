package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
	"recommendation-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CookieConfig controls the jwt cookie set on sign-in.
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

type Handlers struct {
	recommendationsUC usecases_port.GetRecommendationsUseCasePort
	loginUC           usecases_port.LoginUserUseCasePort
	reviewsUC         usecases_port.GetPropertyReviewsUseCasePort
	cookie            CookieConfig
}

func NewHandlers(
	recommendationsUC usecases_port.GetRecommendationsUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	reviewsUC usecases_port.GetPropertyReviewsUseCasePort,
	cookie CookieConfig,
) *Handlers {
	return &Handlers{
		recommendationsUC: recommendationsUC,
		loginUC:           loginUC,
		reviewsUC:         reviewsUC,
		cookie:            cookie,
	}
}

// HandleSignIn handles POST /api/users/signin
func (h *Handlers) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SignIn"})

	var req SignInRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		if writeBodyTooLarge(w, err) {
			return
		}
		logger.Warn("Failed to decode sign-in request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing sign-in request", nil)

	user, token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			WriteJSONError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		handlerLogger.Error("Login use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.TTL),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	handlerLogger.Info("User signed in", port.Fields{"user_id": user.ID.String()})
	RespondWithJSON(w, http.StatusOK, SignInResponseDTO{
		Status:  "success",
		Message: "Welcome back " + user.Name,
		Token:   token,
		Data:    SignInDataDTO{User: toUserDTO(user)},
	})
}

// HandleGetRecommendations handles POST /api/recommendations
func (h *Handlers) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetRecommendations"})

	user, ok := contextkeys.UserFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, msgLoginRequired)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		if writeBodyTooLarge(w, err) {
			return
		}
		logger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	body := map[string]interface{}{}
	if len(strings.TrimSpace(string(data))) > 0 {
		body, err = decodeJSONObject(data)
		if err != nil {
			logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	req, fieldErrs := ParseRecommendationRequest(body)
	if len(fieldErrs) > 0 {
		logger.Info("Request failed validation", port.Fields{"errors": len(fieldErrs)})
		RespondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: fieldErrs})
		return
	}

	result, err := h.recommendationsUC.Execute(r.Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrValidationFailure):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrRetrievalFailure):
			logger.Error("Candidate retrieval failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Could not retrieve recommendations")
		default:
			logger.Error("Recommendation use case failed with an unexpected error", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, toRecommendationsResponse(result))
}

// HandleGetPropertyReviews handles GET /api/properties/{propertyID}/reviews
func (h *Handlers) HandleGetPropertyReviews(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPropertyReviews"})

	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	reviews, err := h.reviewsUC.Execute(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "No property found with that ID")
			return
		}
		logger.Error("Reviews use case failed", err, port.Fields{"property_id": propertyID.String()})
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	dtos := toReviewDTOs(reviews)
	RespondWithJSON(w, http.StatusOK, ReviewsResponseDTO{
		Status:     "success",
		Results:    len(dtos),
		PropertyID: propertyID.String(),
		Reviews:    dtos,
	})
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the database answers within two seconds.
func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			contextkeys.LoggerFromContext(r.Context()).Error("Health check failed", err, nil)
			RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeBodyTooLarge(w http.ResponseWriter, err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		WriteJSONError(w, http.StatusRequestEntityTooLarge, "Request body is too large")
		return true
	}
	return false
}
