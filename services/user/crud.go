package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "syncslot/database/repository/user"
	"syncslot/models"
	"syncslot/utils"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, utils.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the display name and timezone. Empty values are kept.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID, name, timezone string) (*models.User, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, utils.NewInvalidError("unknown timezone %q", timezone)
		}
		u.Timezone = timezone
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}
