// Package directoryrepo reads accounts from the users table. Account
// management itself lives outside this service.
package directoryrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory implements ports.UserDirectory.
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

func (d *GormUserDirectory) FindByID(ctx context.Context, id kernel.UUID) (ports.User, error) {
	if err := id.Validate(); err != nil {
		return ports.User{}, err
	}

	var dto UserDTO
	err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.User{}, errs.NewObjectNotFoundError("userID", id)
	}
	if err != nil {
		return ports.User{}, pkgerrors.Wrapf(err, "load user %s", id)
	}

	role, err := actor.ParseRole(dto.Role)
	if err != nil {
		return ports.User{}, err
	}
	return ports.User{ID: id, Name: dto.Name, Role: role, IsActive: dto.IsActive}, nil
}
