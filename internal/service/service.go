package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Jacopo21/gutmann-privatebank/internal/config"
	"github.com/Jacopo21/gutmann-privatebank/internal/models"
	"github.com/Jacopo21/gutmann-privatebank/internal/simulation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Store is the subset of repository operations the service depends on
type Store interface {
	CreateAdvisor(advisor *models.Advisor) error
	FindAdvisorByEmail(email string) (*models.Advisor, error)
	RecordProjection(req *models.ProjectionRequest) error
	ListProjections(advisorID int64, limit int) ([]models.ProjectionRequest, error)
}

// ReportSender delivers projection reports to clients
type ReportSender interface {
	SendProjectionReport(to string, input models.ProjectionInput, result *models.ProjectionResult) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	engine *simulation.Engine
	mailer ReportSender
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config, engine *simulation.Engine, mailer ReportSender) *Service {
	return &Service{store: store, log: log, config: cfg, engine: engine, mailer: mailer}
}

// Register creates a new advisor account with hashed password
func (s *Service) Register(username, email, password string) (*models.Advisor, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	advisor := &models.Advisor{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateAdvisor(advisor); err != nil {
		return nil, err
	}

	s.log.Infof("Advisor registered: %s", advisor.Email)
	return advisor, nil
}

// Login authenticates an advisor and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	advisor, err := s.store.FindAdvisorByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(advisor.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	ttl := time.Duration(s.config.TokenTTLHours) * time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", advisor.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("Advisor logged in: %s", advisor.Email)
	return tokenString, nil
}

// Project runs a Monte Carlo projection for the authenticated advisor and
// records the request parameters for auditing. Results are never persisted.
func (s *Service) Project(ctx context.Context, input models.ProjectionInput) (*models.ProjectionResult, error) {
	advisorID, err := advisorIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Project(input)
	if err != nil {
		return nil, err
	}

	audit := &models.ProjectionRequest{
		AdvisorID:           advisorID,
		InitialAmount:       input.InitialAmount,
		MonthlyContribution: input.MonthlyContribution,
		RiskLevel:           input.RiskLevel,
		HorizonYears:        input.HorizonYears,
	}
	if err := s.store.RecordProjection(audit); err != nil {
		return nil, err
	}

	s.log.Infof("Projection for advisor %d: risk %d, %d years, %d paths",
		advisorID, input.RiskLevel, input.HorizonYears, result.Simulations)
	return result, nil
}

// History returns the advisor's most recent projection requests
func (s *Service) History(ctx context.Context, limit int) ([]models.ProjectionRequest, error) {
	advisorID, err := advisorIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.ListProjections(advisorID, limit)
}

// EmailReport runs a projection and mails the summary to the recipient
func (s *Service) EmailReport(ctx context.Context, input models.ProjectionInput, recipient string) (*models.ProjectionResult, error) {
	result, err := s.Project(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendProjectionReport(recipient, input, result); err != nil {
		return nil, fmt.Errorf("failed to send report: %w", err)
	}

	s.log.Infof("Projection report sent to %s", recipient)
	return result, nil
}

func advisorIDFromContext(ctx context.Context) (int64, error) {
	advisorIDStr, ok := ctx.Value("advisorID").(string)
	if !ok || advisorIDStr == "" {
		return 0, fmt.Errorf("advisor ID not found in context")
	}
	advisorID, err := strconv.ParseInt(advisorIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid advisor ID: %w", err)
	}
	return advisorID, nil
}
