package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"mun-chits/internal/domain/user"
	"mun-chits/internal/repository"
	chits_errors "mun-chits/pkg/errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedConfig describes the development roster.
type SeedConfig struct {
	Password   string
	Committees []SeedCommittee
}

type SeedCommittee struct {
	Name       string
	EBs        []string
	Portfolios []string
}

func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Password: "password123",
		Committees: []SeedCommittee{
			{
				Name:       "UNSC",
				EBs:        []string{"Chair", "Vice Chair"},
				Portfolios: []string{"France", "China", "Russia", "United Kingdom", "United States"},
			},
			{
				Name:       "WHO",
				EBs:        []string{"Director"},
				Portfolios: []string{"India", "Brazil", "Kenya"},
			},
		},
	}
}

type SeedResult struct {
	Created []user.User
	Skipped int
}

// Seed creates one account per EB seat and portfolio. Usernames are
// <committee>_<portfolio> lowercased; existing usernames are left alone.
func Seed(ctx context.Context, db *gorm.DB, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := repository.NewUserRepository(db)
	result := &SeedResult{}

	for _, committee := range cfg.Committees {
		seats := make([]user.User, 0, len(committee.EBs)+len(committee.Portfolios))
		for _, p := range committee.EBs {
			seats = append(seats, seedUser(committee.Name, p, user.RoleEB, string(hash)))
		}
		for _, p := range committee.Portfolios {
			seats = append(seats, seedUser(committee.Name, p, user.RoleDelegate, string(hash)))
		}

		for i := range seats {
			_, err := users.GetUserByUsername(ctx, seats[i].Username)
			if err == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(err, chits_errors.ErrNotFound) {
				return nil, err
			}
			if err := users.Create(ctx, &seats[i]); err != nil {
				return nil, fmt.Errorf("failed to seed %s: %w", seats[i].Username, err)
			}
			result.Created = append(result.Created, seats[i])
		}
	}

	log.Printf("Seeded %d users (%d already present)", len(result.Created), result.Skipped)
	return result, nil
}

func seedUser(committee, portfolio string, role user.Role, hash string) user.User {
	return user.User{
		Username:     SeedUsername(committee, portfolio),
		PasswordHash: hash,
		Portfolio:    portfolio,
		Committee:    committee,
		Role:         role,
	}
}

func SeedUsername(committee, portfolio string) string {
	name := strings.ToLower(committee + "_" + portfolio)
	return strings.ReplaceAll(name, " ", "_")
}
