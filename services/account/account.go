package account

import (
	"time"

	accountRepo "barberbook/database/repository/account"
	"barberbook/models"
	"barberbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const tokenTTL = 5 * time.Hour

// AuthError is returned for bad credentials or unusable tokens.
type AuthError struct {
	Reason string
}

func (e AuthError) Error() string { return e.Reason }

// Service authenticates accounts and issues bearer tokens.
type Service interface {
	Authenticate(username, password string) (token string, acct *models.Account, err error)
	GetByUsername(username string) (*models.Account, error)
	SignOut(username string) error
}

// DefaultAccountService implements Service.
type DefaultAccountService struct {
	Repo      accountRepo.AccountRepository
	AuthCache *redis.Client
}

// Authenticate verifies credentials and returns a signed token. The token
// hash is cached so the auth middleware can validate without a DB round trip.
func (s *DefaultAccountService) Authenticate(username, password string) (string, *models.Account, error) {
	logger := utils.GetLogger()

	acct, err := s.Repo.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if acct == nil || !utils.CheckPassword(acct.PasswordHash, password) {
		logger.Warn("failed login attempt", zap.String("username", username))
		return "", nil, AuthError{Reason: "Incorrect username or password"}
	}

	token, err := utils.GenerateToken(acct.Username, acct.Role, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	if err := utils.CacheAuthToken(s.AuthCache, acct.Username, utils.HashToken(token), tokenTTL); err != nil {
		logger.Warn("failed to cache auth token", zap.Error(err))
	}
	return token, acct, nil
}

// GetByUsername returns the account for a username, or nil.
func (s *DefaultAccountService) GetByUsername(username string) (*models.Account, error) {
	return s.Repo.GetByUsername(username)
}

// SignOut revokes the cached token for the account.
func (s *DefaultAccountService) SignOut(username string) error {
	return utils.RevokeAuthToken(s.AuthCache, username)
}
