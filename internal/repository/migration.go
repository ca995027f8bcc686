package repository

import (
	"fmt"

	"mun-chits/internal/domain/conversation"
	"mun-chits/internal/domain/message"
	"mun-chits/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every table owned by the service in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&conversation.Conversation{},
		&conversation.Participant{},
		&message.Message{},
	}
}

// InitSchema creates extensions (postgres only) and auto-migrates the tables.
func InitSchema(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		// Creating extensions may need elevated privileges on managed databases.
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`).Error; err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

// TableNames returns the service tables, children first, for truncation.
func TableNames() []string {
	return []string{
		message.Message{}.TableName(),
		conversation.Participant{}.TableName(),
		conversation.Conversation{}.TableName(),
		user.User{}.TableName(),
	}
}
