package application

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-lifecycle-service/internal/domain/entity"
	"github.com/oksasatya/user-lifecycle-service/internal/domain/event"
	repo "github.com/oksasatya/user-lifecycle-service/internal/domain/repository"
)

// DefaultPublishTimeout bounds the synchronous wait for a USER_CREATED
// publish acknowledgment.
const DefaultPublishTimeout = 5 * time.Second

var validate = validator.New()

// PasswordHasher is the one-way credential transform consumed by the service.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// EventPublisher delivers a domain event to the downstream stream.
// Delivery is best-effort from the service's point of view: failures are
// logged and never surfaced to callers.
type EventPublisher interface {
	Publish(ctx context.Context, ev event.UserEvent) error
}

// Service orchestrates the user store, credential hasher and event
// publisher to implement the account lifecycle. All collaborators are
// constructor-injected.
type Service struct {
	repo           repo.UserRepository
	hasher         PasswordHasher
	publisher      EventPublisher
	logger         *logrus.Logger
	publishTimeout time.Duration
}

func NewService(r repo.UserRepository, hasher PasswordHasher, publisher EventPublisher, logger *logrus.Logger, publishTimeout time.Duration) *Service {
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &Service{
		repo:           r,
		hasher:         hasher,
		publisher:      publisher,
		logger:         logger,
		publishTimeout: publishTimeout,
	}
}

// CreateUserInput carries the candidate profile and plaintext secret.
type CreateUserInput struct {
	Name     string `validate:"required,max=50"`
	LastName string `validate:"required,max=50"`
	Email    string `validate:"required,email,max=254"`
	Age      *int   `validate:"omitempty,gte=0,lte=150"`
	Password string `validate:"required,min=6,max=72"`
}

// UpdateUserInput carries the full replacement profile. Update has
// overwrite semantics: every field here replaces the stored value.
type UpdateUserInput struct {
	Name     string `validate:"required,max=50"`
	LastName string `validate:"required,max=50"`
	Email    string `validate:"required,email,max=254"`
	Age      *int   `validate:"omitempty,gte=0,lte=150"`
}

// CreateUser registers a new account. The store write is the
// transactional boundary: once it commits the user is returned even if
// the USER_CREATED publish fails or times out.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, invalidArgument("invalid user data", err)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, internal("email lookup failed", err)
	}
	if existing != nil {
		return nil, conflictf("email %s already exists", in.Email)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		// Hashing only fails on misconfiguration (e.g. cost out of
		// range) or oversized input; treated as fatal, not user error.
		return nil, internal("password hashing failed", err)
	}

	u := &entity.User{
		Name:         in.Name,
		LastName:     in.LastName,
		Email:        in.Email,
		Age:          in.Age,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, conflictf("email %s already exists", in.Email)
		}
		return nil, internal("user creation failed", err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user created")

	s.publishAwait(ctx, event.NewUserCreated(u.Email))

	return u, nil
}

// GetAllUsers returns every active user in store iteration order. An
// empty active set is reported as a not-found error.
func (s *Service) GetAllUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.repo.GetAllActive(ctx)
	if err != nil {
		return nil, internal("active user scan failed", err)
	}
	if len(users) == 0 {
		return nil, notFoundf("no active users")
	}
	return users, nil
}

// GetUserByID finds a user by id, active or not.
func (s *Service) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundf("user %s not found", id)
		}
		return nil, internal("user lookup failed", err)
	}
	return u, nil
}

// GetUserByEmail finds a user by email, active or not.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundf("user with email %s not found", email)
		}
		return nil, internal("user lookup failed", err)
	}
	return u, nil
}

// UpdateUser replaces the profile fields unconditionally. It never
// touches the password hash, role or active flag, and performs no
// uniqueness pre-check on the new email; a collision surfaces from the
// store at commit time.
func (s *Service) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, invalidArgument("invalid user data", err)
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundf("user %s not found", id)
		}
		return nil, internal("user lookup failed", err)
	}

	u.Name = in.Name
	u.LastName = in.LastName
	u.Email = in.Email
	u.Age = in.Age

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, internal("user update failed", err)
	}
	return u, nil
}

// DeleteUserByID soft-deletes an active user and emits USER_DELETED
// fire-and-forget. A second delete on the same user is rejected.
func (s *Service) DeleteUserByID(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundf("user %s not found", id)
		}
		return internal("user lookup failed", err)
	}
	if !u.IsActive {
		return invalidStatef("user %s is already deleted", id)
	}

	u.IsActive = false
	if err := s.repo.Update(ctx, u); err != nil {
		return internal("user deletion failed", err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user soft-deleted")

	s.publishAsync(event.NewUserDeleted(u.Email))

	return nil
}

// publishAwait blocks the caller up to publishTimeout waiting for the
// publisher's acknowledgment. The bound holds even if the publisher
// never completes. Failures and timeouts are logged and swallowed.
func (s *Service) publishAwait(ctx context.Context, ev event.UserEvent) {
	pctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.publisher.Publish(pctx, ev)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.logger.WithError(err).WithField("event_type", ev.EventType).Warn("event publish failed")
			return
		}
		s.logger.WithField("event_type", ev.EventType).Debug("event publish acknowledged")
	case <-pctx.Done():
		s.logger.WithField("event_type", ev.EventType).Warn("event publish timed out")
	}
}

// publishAsync delivers the event opportunistically without blocking
// the calling path.
func (s *Service) publishAsync(ev event.UserEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.WithError(err).WithField("event_type", ev.EventType).Warn("event publish failed")
		}
	}()
}
