package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"parkspot-backend/internal/auth"
	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/pkg/apperror"
	"parkspot-backend/internal/store"
)

var (
	ErrNotFound           = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(apperror.KindConflict, "email already used")
	ErrInvalidCredentials = apperror.New(apperror.KindForbidden, "invalid email or password")
	ErrMissingFields      = apperror.New(apperror.KindInvalidInput, "please enter all fields")
)

// Patch carries the optional profile fields of a profile update. Absent
// fields are left unchanged.
type Patch struct {
	Name     *string
	Email    *string
	Password *string
}

// AdminPatch carries the fields an admin may change on any user.
type AdminPatch struct {
	Name    *string
	Email   *string
	IsAdmin *bool
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile patches the caller's own profile, creating the user
	// record on first write for identities minted upstream.
	UpdateProfile(ctx context.Context, id string, patch Patch) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	AdminUpdate(ctx context.Context, id string, patch AdminPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store  store.Store
	hasher auth.PasswordHasher
}

// NewService creates a new user Service.
func NewService(st store.Store, hasher auth.PasswordHasher) Service {
	return &service{
		store:  st,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	cleanEmail := normalizeEmail(email)
	if name == "" || cleanEmail == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        cleanEmail,
		PasswordHash: hash,
		IsAdmin:      false,
	}

	err = s.store.Update(ctx, func(doc *domain.Document) error {
		if doc.FindUserByEmail(cleanEmail) != nil {
			return ErrEmailAlreadyUsed
		}
		doc.Users = append(doc.Users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || password == "" {
		return nil, ErrMissingFields
	}

	var u *domain.User
	err := s.store.View(ctx, func(doc *domain.Document) error {
		if found := doc.FindUserByEmail(cleanEmail); found != nil {
			copied := *found
			u = &copied
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Same error for unknown email and wrong password.
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u *domain.User
	err := s.store.View(ctx, func(doc *domain.Document) error {
		if found := doc.FindUser(id); found != nil {
			copied := *found
			u = &copied
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, id string, patch Patch) (*domain.User, error) {
	if id == "" {
		return nil, ErrMissingFields
	}

	var hash string
	if patch.Password != nil && *patch.Password != "" {
		var err error
		hash, err = s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	var updated domain.User
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		u := doc.FindUser(id)
		if u == nil {
			// First authenticated write from an identity the document has
			// not seen yet: create the record in place. The email must be
			// free, same as on the update path below.
			cleanEmail := normalizeEmail(coalesce(patch.Email, ""))
			if cleanEmail != "" && doc.FindUserByEmail(cleanEmail) != nil {
				return ErrEmailAlreadyUsed
			}
			doc.Users = append(doc.Users, domain.User{
				ID:           id,
				Name:         coalesce(patch.Name, "User"),
				Email:        cleanEmail,
				PasswordHash: hash,
				IsAdmin:      false,
			})
			updated = doc.Users[len(doc.Users)-1]
			return nil
		}

		if patch.Email != nil && *patch.Email != "" {
			cleanEmail := normalizeEmail(*patch.Email)
			if other := doc.FindUserByEmail(cleanEmail); other != nil && other.ID != id {
				return ErrEmailAlreadyUsed
			}
			u.Email = cleanEmail
		}
		if patch.Name != nil && *patch.Name != "" {
			u.Name = strings.TrimSpace(*patch.Name)
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.store.View(ctx, func(doc *domain.Document) error {
		users = append([]domain.User(nil), doc.Users...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *service) AdminUpdate(ctx context.Context, id string, patch AdminPatch) (*domain.User, error) {
	var updated domain.User
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		u := doc.FindUser(id)
		if u == nil {
			return ErrNotFound
		}
		if patch.Email != nil && *patch.Email != "" {
			cleanEmail := normalizeEmail(*patch.Email)
			if other := doc.FindUserByEmail(cleanEmail); other != nil && other.ID != id {
				return ErrEmailAlreadyUsed
			}
			u.Email = cleanEmail
		}
		if patch.Name != nil && *patch.Name != "" {
			u.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.IsAdmin != nil {
			u.IsAdmin = *patch.IsAdmin
		}
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *domain.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func coalesce(ptr *string, fallback string) string {
	if ptr != nil && strings.TrimSpace(*ptr) != "" {
		return strings.TrimSpace(*ptr)
	}
	return fallback
}
