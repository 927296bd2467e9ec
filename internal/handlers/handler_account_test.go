package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/flowcounts/backend/internal/dto"
	"github.com/flowcounts/backend/internal/handlers"
	"github.com/flowcounts/backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID int64, actor domain.Actor) error {
	args := m.Called(ctx, accountID, actor)
	return args.Error(0)
}

func (m *MockAccountService) ActivateAccount(ctx context.Context, accountID int64, actor domain.Actor) error {
	args := m.Called(ctx, accountID, actor)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

func (suite *AccountHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	claims := testTokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockAccountService = new(MockAccountService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account: suite.mockAccountService,
	})
}

func sampleAccount(id int64) *domain.Account {
	return &domain.Account{
		AccountID:      id,
		Number:         "1010",
		Name:           "Cash",
		Description:    "Cash on hand",
		Category:       domain.Asset,
		Subcategory:    "Current Assets",
		NormalSide:     domain.DebitSide,
		Statement:      domain.BalanceSheet,
		InitialBalance: decimal.NewFromInt(1000),
		Balance:        decimal.NewFromInt(1000),
		IsActive:       true,
	}
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := "user-admin"
	token := suite.generateTestToken(userID, domain.RoleAdmin)
	req := dto.CreateAccountRequest{
		Number:         "1010",
		Name:           "Cash",
		Description:    "Cash on hand",
		Category:       domain.Asset,
		Subcategory:    "Current Assets",
		NormalSide:     domain.DebitSide,
		Statement:      domain.BalanceSheet,
		InitialBalance: decimal.NewFromInt(1000),
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
		return r.Number == "1010" && r.InitialBalance.Equal(decimal.NewFromInt(1000))
	}), domain.Actor{UserID: userID, Role: domain.RoleAdmin}).
		Return(sampleAccount(1), nil).Once()

	w := doJSON(suite.router, http.MethodPost, "/api/v1/accounts", token, req)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.AccountID)
	suite.Equal("1010", resp.Number)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Forbidden() {
	token := suite.generateTestToken("user-1", domain.RoleAccountant)

	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrForbidden).Once()

	w := doJSON(suite.router, http.MethodPost, "/api/v1/accounts", token, dto.CreateAccountRequest{
		Number: "1010", Name: "Cash", Description: "Cash on hand",
		Category: domain.Asset, Subcategory: "Current Assets",
		NormalSide: domain.DebitSide, Statement: domain.BalanceSheet,
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	token := suite.generateTestToken("user-1", domain.RoleAccountant)

	suite.mockAccountService.On("GetAccountByID", mock.Anything, int64(404)).
		Return(nil, apperrors.ErrNotFound).Once()

	w := doJSON(suite.router, http.MethodGet, "/api/v1/accounts/404", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_IncludeInactive() {
	token := suite.generateTestToken("user-1", domain.RoleAccountant)
	inactive := sampleAccount(2)
	inactive.IsActive = false

	suite.mockAccountService.On("ListAccounts", mock.Anything, true).
		Return([]domain.Account{*sampleAccount(1), *inactive}, nil).Once()

	w := doJSON(suite.router, http.MethodGet, "/api/v1/accounts?includeInactive=true", token, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_BalanceConflict() {
	userID := "user-admin"
	token := suite.generateTestToken(userID, domain.RoleAdmin)

	suite.mockAccountService.On("DeactivateAccount", mock.Anything, int64(1),
		domain.Actor{UserID: userID, Role: domain.RoleAdmin}).
		Return(fmt.Errorf("account 1010 has balance 250.00: %w", apperrors.ErrConflict)).Once()

	w := doJSON(suite.router, http.MethodPost, "/api/v1/accounts/1/deactivate", token, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_ValidationError() {
	userID := "user-admin"
	token := suite.generateTestToken(userID, domain.RoleAdmin)
	newCategory := domain.Liability

	vErr := &apperrors.ValidationError{}
	vErr.Add("category", "category and normal side must be updated together")
	suite.mockAccountService.On("UpdateAccount", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(nil, vErr).Once()

	w := doJSON(suite.router, http.MethodPut, "/api/v1/accounts/1", token, dto.UpdateAccountRequest{Category: &newCategory})

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp struct {
		Fields []apperrors.FieldError `json:"fields"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Fields, 1)
	suite.Equal("category", resp.Fields[0].Field)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
