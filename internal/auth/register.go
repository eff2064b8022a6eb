package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mercatoapp/mercato-backend/internal/users"
	"github.com/mercatoapp/mercato-backend/pkg/config"
	"github.com/mercatoapp/mercato-backend/pkg/db"
	"github.com/mercatoapp/mercato-backend/pkg/db/models"
	pkgerrors "github.com/mercatoapp/mercato-backend/pkg/errors"
	"github.com/mercatoapp/mercato-backend/pkg/firebase"
	"github.com/mercatoapp/mercato-backend/pkg/logger"
	"github.com/mercatoapp/mercato-backend/pkg/security"
)

const profileSyncTimeout = 15 * time.Second

// RegisterService handles account creation.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// TxRunner abstracts the transactional boundary of the registration flow.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type profileSyncer interface {
	SyncProfile(ctx context.Context, userID string, profile firebase.Profile) error
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	TxRunner        TxRunner
	UserRepoFactory func(tx *gorm.DB) registerUserRepository
	PasswordConfig  config.PasswordConfig
	Logger          *logger.Logger
	ProfileSync     profileSyncer
}

type registerService struct {
	tx          TxRunner
	userRepo    func(tx *gorm.DB) registerUserRepository
	passwordCfg config.PasswordConfig
	logger      *logger.Logger
	profileSync profileSyncer
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tx runner required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	factory := params.UserRepoFactory
	if factory == nil {
		factory = func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		}
	}
	return &registerService{
		tx:          params.TxRunner,
		userRepo:    factory,
		passwordCfg: params.PasswordConfig,
		logger:      params.Logger,
		profileSync: params.ProfileSync,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepo(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:           email,
			PasswordHash:    passwordHash,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Phone:           req.Phone,
			Address:         req.Address,
			IsBusinessOwner: req.IsBusinessOwner,
		})
		if err != nil {
			// Concurrent registration of the same email loses the insert race.
			if db.IsUniqueViolation(err, "uq_users_email") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.syncProfileAsync(ctx, created)

	return &RegisterResponse{User: users.FromModel(created)}, nil
}

// syncProfileAsync mirrors the profile to Firebase without blocking registration.
// Failures are logged and otherwise ignored.
func (s *registerService) syncProfileAsync(ctx context.Context, user *models.User) {
	if s.profileSync == nil || user == nil {
		return
	}

	logCtx := s.logger.WithUserID(context.WithoutCancel(ctx), user.ID.String())
	profile := firebase.Profile{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsClient:  user.IsClient,
	}
	if user.Phone != nil {
		profile.Phone = *user.Phone
	}

	go func() {
		syncCtx, cancel := context.WithTimeout(logCtx, profileSyncTimeout)
		defer cancel()
		if err := s.profileSync.SyncProfile(syncCtx, user.ID.String(), profile); err != nil {
			s.logger.Error(logCtx, "firebase profile sync failed", err)
			return
		}
		s.logger.Info(logCtx, "firebase profile synced")
	}()
}
