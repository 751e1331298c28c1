package accountRepo

import "barberbook/models"

// AccountRepository manages login accounts.
type AccountRepository interface {
	GetByUsername(username string) (*models.Account, error)
	Create(account *models.Account) error
}
