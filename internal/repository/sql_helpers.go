package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func orderByCreatedAt(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// withThread preloads everything a conversation view needs.
func withThread(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Participants", orderByPosition).
		Preload("Participants.User").
		Preload("Messages", orderByCreatedAt).
		Preload("Messages.Sender")
}
