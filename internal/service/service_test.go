package service

import (
	"context"
	"io"
	"testing"

	"github.com/Jacopo21/gutmann-privatebank/internal/config"
	"github.com/Jacopo21/gutmann-privatebank/internal/models"
	"github.com/Jacopo21/gutmann-privatebank/internal/simulation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	advisors   map[string]*models.Advisor
	recorded   []models.ProjectionRequest
	nextID     int64
	listResult []models.ProjectionRequest
	listLimit  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{advisors: make(map[string]*models.Advisor)}
}

func (f *fakeStore) CreateAdvisor(advisor *models.Advisor) error {
	f.nextID++
	advisor.ID = f.nextID
	f.advisors[advisor.Email] = advisor
	return nil
}

func (f *fakeStore) FindAdvisorByEmail(email string) (*models.Advisor, error) {
	advisor, ok := f.advisors[email]
	if !ok {
		return nil, assert.AnError
	}
	return advisor, nil
}

func (f *fakeStore) RecordProjection(req *models.ProjectionRequest) error {
	f.nextID++
	req.ID = f.nextID
	f.recorded = append(f.recorded, *req)
	return nil
}

func (f *fakeStore) ListProjections(advisorID int64, limit int) ([]models.ProjectionRequest, error) {
	f.listLimit = limit
	return f.listResult, nil
}

type fakeSender struct {
	to     string
	inputs []models.ProjectionInput
}

func (f *fakeSender) SendProjectionReport(to string, input models.ProjectionInput, result *models.ProjectionResult) error {
	f.to = to
	f.inputs = append(f.inputs, input)
	return nil
}

func newTestService(store Store, sender ReportSender) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTLHours: 1}
	engine := simulation.NewEngine(simulation.WithSeed(1), simulation.WithPaths(25))
	return NewService(store, logger, cfg, engine, sender)
}

func advisorContext(id string) context.Context {
	return context.WithValue(context.Background(), "advisorID", id)
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSender{})

	advisor, err := svc.Register("anna", "anna@gutmann.test", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, advisor)

	assert.NotEqual(t, "hunter22", advisor.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(advisor.PasswordHash), []byte("hunter22")))
}

func TestLoginIssuesToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSender{})

	_, err := svc.Register("anna", "anna@gutmann.test", "hunter22")
	require.NoError(t, err)

	tokenString, err := svc.Login("anna@gutmann.test", "hunter22")
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, "1", claims.Subject)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSender{})

	_, err := svc.Register("anna", "anna@gutmann.test", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login("anna@gutmann.test", "wrong")
	assert.Error(t, err)

	_, err = svc.Login("nobody@gutmann.test", "hunter22")
	assert.Error(t, err)
}

func TestProjectRecordsAudit(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSender{})

	input := models.ProjectionInput{
		InitialAmount:       1000000,
		MonthlyContribution: 5000,
		RiskLevel:           4,
		HorizonYears:        10,
	}
	result, err := svc.Project(advisorContext("7"), input)
	require.NoError(t, err)
	require.Len(t, result.Records, 121)

	require.Len(t, store.recorded, 1)
	audit := store.recorded[0]
	assert.Equal(t, int64(7), audit.AdvisorID)
	assert.Equal(t, 1000000.0, audit.InitialAmount)
	assert.Equal(t, 5000.0, audit.MonthlyContribution)
	assert.Equal(t, 4, audit.RiskLevel)
	assert.Equal(t, 10, audit.HorizonYears)
}

func TestProjectRequiresAdvisorContext(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSender{})

	_, err := svc.Project(context.Background(), models.ProjectionInput{
		InitialAmount: 1000000,
		RiskLevel:     4,
		HorizonYears:  10,
	})
	assert.Error(t, err)
	assert.Empty(t, store.recorded)
}

func TestProjectInvalidInputNotAudited(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeSender{})

	_, err := svc.Project(advisorContext("7"), models.ProjectionInput{
		InitialAmount: 1000000,
		RiskLevel:     42,
		HorizonYears:  10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, simulation.ErrInvalidRiskLevel)
	assert.Empty(t, store.recorded)
}

func TestEmailReportSendsToRecipient(t *testing.T) {
	store := newFakeStore()
	sender := &fakeSender{}
	svc := newTestService(store, sender)

	input := models.ProjectionInput{
		InitialAmount:       800000,
		MonthlyContribution: 2000,
		RiskLevel:           3,
		HorizonYears:        5,
	}
	result, err := svc.EmailReport(advisorContext("7"), input, "client@example.com")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "client@example.com", sender.to)
	require.Len(t, sender.inputs, 1)
	assert.Equal(t, input, sender.inputs[0])
	assert.Len(t, store.recorded, 1)
}

func TestHistoryDefaultsLimit(t *testing.T) {
	store := newFakeStore()
	store.listResult = []models.ProjectionRequest{{ID: 1, AdvisorID: 7}}
	svc := newTestService(store, &fakeSender{})

	requests, err := svc.History(advisorContext("7"), 0)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, 20, store.listLimit)
}
