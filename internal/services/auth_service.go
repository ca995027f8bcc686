package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"mun-chits/config"
	"mun-chits/internal/domain/user"
	"mun-chits/internal/repository"
	chits_errors "mun-chits/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserCache is an optional read-through cache for profiles. GetUser returns
// nil on a miss.
type UserCache interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*user.User, error)
	SetUser(ctx context.Context, u user.User) error
}

type AuthService struct {
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	cache            UserCache
	jwtSecret        []byte
	accessTTL        time.Duration
}

func NewAuthService(userRepo repository.UserRepository, conversationRepo repository.ConversationRepository, cache UserCache, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		cache:            cache,
		jwtSecret:        []byte(cfg.JWTSecret),
		accessTTL:        time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        Actor  `json:"user"`
}

// Actor is the authenticated caller injected into every request.
type Actor struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Portfolio string    `json:"portfolio"`
	Committee string    `json:"committee"`
	Role      user.Role `json:"role"`
}

func (a Actor) IsEB() bool {
	return a.Role == user.RoleEB
}

// Profile is the actor together with the conversations it takes part in.
type Profile struct {
	Actor
	ConversationIDs []uuid.UUID `json:"conversationIds"`
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return AuthResponse{}, chits_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetUserByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, chits_errors.ErrNotFound) {
			return AuthResponse{}, chits_errors.ErrUnauthorized
		}
		return AuthResponse{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return AuthResponse{}, chits_errors.ErrUnauthorized
	}

	token, expiresIn, err := s.newAccessToken(u.ID)
	if err != nil {
		return AuthResponse{}, err
	}
	s.cacheUser(ctx, u)

	return AuthResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		User:        ToActor(u),
	}, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, chits_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, chits_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, chits_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, chits_errors.ErrUnauthorized
	}
	return *claims, nil
}

// Authenticate turns a token into the actor it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (Actor, error) {
	claims, err := s.ParseAccessToken(tokenString)
	if err != nil {
		return Actor{}, err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Actor{}, chits_errors.ErrUnauthorized
	}

	u, err := s.loadUser(ctx, userID)
	if err != nil {
		if errors.Is(err, chits_errors.ErrNotFound) {
			return Actor{}, chits_errors.ErrUnauthorized
		}
		return Actor{}, err
	}
	return ToActor(u), nil
}

func (s *AuthService) Me(ctx context.Context, actor Actor) (Profile, error) {
	ids, err := s.conversationRepo.GetUserConversationIDs(ctx, actor.ID)
	if err != nil {
		return Profile{}, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return Profile{Actor: actor, ConversationIDs: ids}, nil
}

func (s *AuthService) loadUser(ctx context.Context, userID uuid.UUID) (user.User, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetUser(ctx, userID); err == nil && cached != nil {
			return *cached, nil
		}
	}
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	s.cacheUser(ctx, u)
	return u, nil
}

func (s *AuthService) cacheUser(ctx context.Context, u user.User) {
	if s.cache == nil {
		return
	}
	_ = s.cache.SetUser(ctx, u)
}

func (s *AuthService) newAccessToken(userID uuid.UUID) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessTTL)

	claims := AccessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

func ToActor(u user.User) Actor {
	return Actor{
		ID:        u.ID,
		Username:  u.Username,
		Portfolio: u.Portfolio,
		Committee: u.Committee,
		Role:      u.Role,
	}
}

// HashPassword is used when provisioning accounts.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type ctxKey string

var actorKey ctxKey = "actor"

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)
	return a, ok
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	a, ok := ActorFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return a.ID, true
}
