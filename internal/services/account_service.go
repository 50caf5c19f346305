package services

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/request_models"
	"menteviva/internal/models/response_models"
	"menteviva/internal/repositories"
	"menteviva/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.TokenManager
	adminEmails map[string]struct{}
	logger      *log.Logger
}

// NewAccountService registers accounts whose email appears in adminEmails
// with the admin role.
func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenManager, adminEmails []string, logger *log.Logger) AccountServiceInterface {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[normaliseEmail(email)] = struct{}{}
	}
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		adminEmails: admins,
		logger:      logger,
	}
}

func (a *AccountService) roleFor(email string) string {
	if _, ok := a.adminEmails[email]; ok {
		return db_models.RoleAdmin
	}
	return db_models.RoleUser
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normaliseEmail(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID, account.Role)
	if err != nil {
		a.logger.Error("failed to sign token", "user_id", account.ID, "err", err)
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresIn: int64(a.tokens.TTL().Seconds()),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normaliseEmail(request.Email)
	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	timezone := strings.TrimSpace(request.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := utils.LoadLocation(timezone); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		FullName:           strings.TrimSpace(request.FullName),
		Email:              email,
		PasswordHash:       hashedPassword,
		Role:               a.roleFor(email),
		Whatsapp:           strings.TrimSpace(request.Whatsapp),
		Timezone:           timezone,
		EmailNotifications: true,
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		if errors.Is(err, utils.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}

	return toAccountResponse(newAccount), nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return toAccountResponse(account), nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	updates := map[string]interface{}{}
	if request.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*request.FullName)
	}
	if request.Whatsapp != nil {
		updates["whatsapp"] = strings.TrimSpace(*request.Whatsapp)
	}
	if request.Avatar != nil {
		updates["avatar"] = *request.Avatar
	}
	if request.Timezone != nil {
		if _, err := utils.LoadLocation(*request.Timezone); err != nil {
			return nil, err
		}
		updates["timezone"] = *request.Timezone
	}
	if request.EmailNotifications != nil {
		updates["email_notifications"] = *request.EmailNotifications
	}

	if len(updates) > 0 {
		if err := a.accountRepo.Update(ctx, userID, updates); err != nil {
			if errors.Is(err, utils.ErrAccountNotFound) {
				return nil, err
			}
			return nil, utils.ErrDatabaseError
		}
	}
	return a.GetProfile(ctx, userID)
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toAccountResponse(account *db_models.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:                 account.ID,
		FullName:           account.FullName,
		Email:              account.Email,
		Role:               account.Role,
		Whatsapp:           account.Whatsapp,
		Avatar:             account.Avatar,
		Timezone:           account.Timezone,
		EmailNotifications: account.EmailNotifications,
		CreatedAt:          account.CreatedAt,
	}
}
