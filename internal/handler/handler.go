package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Jacopo21/gutmann-privatebank/internal/chart"
	"github.com/Jacopo21/gutmann-privatebank/internal/models"
	"github.com/Jacopo21/gutmann-privatebank/internal/service"
	"github.com/Jacopo21/gutmann-privatebank/internal/simulation"
)

// Input bounds enforced at the API boundary, mirroring the advisor UI. The
// engine re-validates risk level and sign constraints on its own.
const (
	minInitialAmount = 500000
	maxInitialAmount = 10000000
	minMonthly       = 500
	maxMonthly       = 30000
	minHorizonYears  = 1
	maxHorizonYears  = 20
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register handles advisor registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	advisor, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		http.Error(w, fmt.Sprintf("Registration failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(advisor)
}

// Login handles advisor authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Project runs a projection and returns the full record table
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeProjectionInput(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Project(r.Context(), input)
	if err != nil {
		writeProjectionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ProjectChart runs a projection and returns a PNG fan chart
func (h *Handler) ProjectChart(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeProjectionInput(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Project(r.Context(), input)
	if err != nil {
		writeProjectionError(w, err)
		return
	}

	png, err := chart.Render(result)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// ProjectReport runs a projection and emails the summary to a recipient
func (h *Handler) ProjectReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		models.ProjectionInput
		Recipient string `json:"recipient"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Recipient == "" {
		http.Error(w, "recipient is required", http.StatusBadRequest)
		return
	}
	if msg := validateBounds(req.ProjectionInput); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	result, err := h.svc.EmailReport(r.Context(), req.ProjectionInput, req.Recipient)
	if err != nil {
		writeProjectionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"recipient": req.Recipient,
		"summary":   result.Summary,
	})
}

// History returns the advisor's recent projection requests
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	requests, err := h.svc.History(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load history: %v", err), http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []models.ProjectionRequest{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// RiskProfiles returns the defined risk tiers
func (h *Handler) RiskProfiles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(simulation.RiskProfiles())
}

func (h *Handler) decodeProjectionInput(w http.ResponseWriter, r *http.Request) (models.ProjectionInput, bool) {
	var input models.ProjectionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return input, false
	}
	if msg := validateBounds(input); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return input, false
	}
	return input, true
}

func validateBounds(input models.ProjectionInput) string {
	if input.InitialAmount < minInitialAmount || input.InitialAmount > maxInitialAmount {
		return fmt.Sprintf("initial_amount must be between %d and %d", minInitialAmount, maxInitialAmount)
	}
	if input.MonthlyContribution < minMonthly || input.MonthlyContribution > maxMonthly {
		return fmt.Sprintf("monthly_contribution must be between %d and %d", minMonthly, maxMonthly)
	}
	if input.RiskLevel < simulation.MinRiskLevel || input.RiskLevel > simulation.MaxRiskLevel {
		return fmt.Sprintf("risk_level must be between %d and %d", simulation.MinRiskLevel, simulation.MaxRiskLevel)
	}
	if input.HorizonYears < minHorizonYears || input.HorizonYears > maxHorizonYears {
		return fmt.Sprintf("horizon_years must be between %d and %d", minHorizonYears, maxHorizonYears)
	}
	return ""
}

func writeProjectionError(w http.ResponseWriter, err error) {
	if errors.Is(err, simulation.ErrInvalidRiskLevel) || errors.Is(err, simulation.ErrInvalidParameter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, fmt.Sprintf("Projection failed: %v", err), http.StatusInternalServerError)
}
