package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"paperhub/internal/auth"
	"paperhub/internal/config"
	"paperhub/internal/model"
	"paperhub/internal/repository"
)

var (
	ErrAllFieldsRequired  = errors.New("name, email, password, and role are required")
	ErrInvalidRole        = errors.New("role must be student or mentor")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterRequest carries a signup submission.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResult carries a minted session token and the account role.
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// UserService defines account use cases: signup, login, mentor directory.
type UserService interface {
	// Register creates a new account with a bcrypt-hashed password.
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)

	// Login verifies credentials and mints a token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Mentors lists the accounts papers can be assigned to.
	Mentors(ctx context.Context) ([]model.User, error)

	// Profile returns the account with its paper reference list populated.
	Profile(ctx context.Context, userID string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
	cfg  config.AuthConfig
}

// NewUserService constructs a UserService using the identity repository and
// auth settings.
func NewUserService(repo repository.UserRepository, cfg config.AuthConfig) UserService {
	return &userService{repo: repo, cfg: cfg}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, ErrAllFieldsRequired
	}
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	cost := s.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Files:        []string{},
		CreatedAt:    time.Now().UTC(),
	}

	stored, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordWrite, err)
	}
	if stored.Files == nil {
		stored.Files = []string{}
	}
	return stored, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.TokenTTLMin) * time.Minute
	token, err := auth.GenerateToken(user.ID, user.Role, []byte(s.cfg.JWTSecret), ttl)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	return &LoginResult{Token: token, Role: user.Role}, nil
}

func (s *userService) Profile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	ids, err := s.repo.PaperIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	user.Files = ids
	if user.Files == nil {
		user.Files = []string{}
	}
	return user, nil
}

func (s *userService) Mentors(ctx context.Context) ([]model.User, error) {
	mentors, err := s.repo.ListByRole(ctx, model.RoleMentor)
	if err != nil {
		return nil, err
	}
	for i := range mentors {
		mentors[i].PasswordHash = ""
		if mentors[i].Files == nil {
			mentors[i].Files = []string{}
		}
	}
	return mentors, nil
}
