package repository

import (
	"context"
	"errors"

	"mun-chits/internal/domain/user"
	chits_errors "mun-chits/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return chits_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, chits_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, chits_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetUsersByRoleAndCommittee(ctx context.Context, role user.Role, committee string) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND committee = ?", role, committee).
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresUserRepository) GetSidebarUsers(ctx context.Context, excludeID uuid.UUID, committee string) ([]user.User, error) {
	var users []user.User

	q := r.db.WithContext(ctx).
		Where("id <> ? AND role = ?", excludeID, user.RoleDelegate)
	if committee != "" {
		q = q.Where("committee = ?", committee)
	}

	if err := q.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
