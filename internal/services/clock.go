package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"menteviva/internal/repositories"
	"menteviva/pkg/utils"
)

// Clock returns the current instant. Services take one so tests can pin
// "today".
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// userToday resolves the current calendar day in the account's own
// timezone.
func userToday(ctx context.Context, accounts repositories.AccountRepository, userID uuid.UUID, clock Clock) (time.Time, error) {
	account, err := accounts.FindByID(ctx, userID)
	if err != nil {
		return time.Time{}, utils.ErrDatabaseError
	}
	if account == nil {
		return time.Time{}, utils.ErrAccountNotFound
	}
	loc, err := utils.LoadLocation(account.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return utils.LocalDate(clock.Now(), loc), nil
}
