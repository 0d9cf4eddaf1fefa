package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pepiancookingclass/tasty/internal/domain"
	"github.com/pepiancookingclass/tasty/internal/geo"
	"github.com/pepiancookingclass/tasty/internal/middleware"
	"github.com/pepiancookingclass/tasty/internal/pricing"
	"github.com/pepiancookingclass/tasty/internal/router"
	"github.com/pepiancookingclass/tasty/internal/validation"
)

// ValidateAddressHandler exposes address-to-pin validation for checkout.
type ValidateAddressHandler struct {
	service  validation.Service
	quoter   pricing.Quoter
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidateAddressHandler creates a new validate address handler.
func NewValidateAddressHandler(
	service validation.Service,
	quoter pricing.Quoter,
	logger *slog.Logger,
) *ValidateAddressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidateAddressHandler{
		service:  service,
		quoter:   quoter,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// RegisterRoutes registers the checkout validation routes.
func (h *ValidateAddressHandler) RegisterRoutes(r *router.Router) {
	r.Post("/api/checkout/validate-address", h.ValidateAddress)
}

type validateAddressRequest struct {
	CreatorID   string         `json:"creator_id" validate:"required"`
	Address     domain.Address `json:"address"`
	Reference   geo.Coordinate `json:"reference" validate:"required"`
	ThresholdKm float64        `json:"threshold_km" validate:"omitempty,gt=0"`
}

type validateAddressResponse struct {
	Result   domain.ValidationResult `json:"result"`
	Delivery *pricing.Quote          `json:"delivery,omitempty"`
}

// ValidateAddress handles POST /api/checkout/validate-address.
//
// The response is always 200 for well-formed requests; domain-level
// failures (unresolvable address, pin too far) are reported inside the
// result body so the storefront can render them inline.
func (h *ValidateAddressHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", middleware.RequestIDFromContext(r.Context()))

	var req validateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode validate address request", "error", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		logger.Warn("Validate address request failed binding", "error", err)
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	result := h.service.Validate(r.Context(), req.Address, req.Reference, req.ThresholdKm)

	resp := validateAddressResponse{Result: result}

	if result.OK && h.quoter != nil {
		quote, err := h.quoter.Quote(r.Context(), req.CreatorID, result.DistanceKm)
		if err != nil {
			logger.Error("Failed to quote delivery fee",
				"error", err,
				"creator_id", req.CreatorID,
				"distance_km", result.DistanceKm,
			)
		} else {
			resp.Delivery = &quote
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode validate address response", "error", err)
	}
}
