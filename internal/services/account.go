package services

import (
	"context"
	"log"
	"strings"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
)

// DefaultProtectedAccount is the administrator created on first install.
const DefaultProtectedAccount = "ADMIN001"

// AccountPolicy decides which accounts may never be deleted.
type AccountPolicy struct {
	protected map[string]struct{}
}

func NewAccountPolicy(ids ...string) AccountPolicy {
	p := AccountPolicy{protected: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			p.protected[id] = struct{}{}
		}
	}
	if len(p.protected) == 0 {
		p.protected[DefaultProtectedAccount] = struct{}{}
	}
	return p
}

func (p AccountPolicy) IsProtected(id string) bool {
	_, ok := p.protected[id]
	return ok
}

type AccountService interface {
	Register(ctx context.Context, user *models.UserRecord) error
	Get(ctx context.Context, id string) (*models.UserRecord, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.UserRecord, error)
	Delete(ctx context.Context, id string) error
}

type accountService struct {
	userRepo repositories.UserRepository
	policy   AccountPolicy
}

func NewAccountService(userRepo repositories.UserRepository, policy AccountPolicy) AccountService {
	return &accountService{userRepo: userRepo, policy: policy}
}

func (s *accountService) Register(ctx context.Context, user *models.UserRecord) error {
	user.ID = strings.TrimSpace(user.ID)
	user.Name = strings.TrimSpace(user.Name)
	if user.ID == "" {
		return &apperrors.ValidationError{Field: "id", Reason: "is required"}
	}
	if user.Name == "" {
		return &apperrors.ValidationError{Field: "name", Reason: "is required"}
	}
	if !user.Role.Valid() {
		return &apperrors.ValidationError{Field: "role", Reason: "must be student, teacher, administrator or staff"}
	}
	if err := checkProfile(user); err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	log.Printf("👤 Registered %s %s\n", user.Role, user.ID)
	return nil
}

// checkProfile requires the profile of the user's role and clears the rest.
func checkProfile(user *models.UserRecord) error {
	switch user.Role {
	case models.RoleStudent:
		if user.Student == nil || user.Student.ClassID == "" {
			return &apperrors.ValidationError{Field: "student.class_id", Reason: "is required for students"}
		}
		user.Teacher, user.Staff, user.Administrator = nil, nil, nil
	case models.RoleTeacher:
		if user.Teacher == nil {
			return &apperrors.ValidationError{Field: "teacher", Reason: "profile is required for teachers"}
		}
		user.Student, user.Staff, user.Administrator = nil, nil, nil
	case models.RoleStaff:
		if user.Staff == nil {
			user.Staff = &models.StaffProfile{}
		}
		user.Student, user.Teacher, user.Administrator = nil, nil, nil
	case models.RoleAdministrator:
		if user.Administrator == nil {
			user.Administrator = &models.AdministratorProfile{}
		}
		user.Student, user.Teacher, user.Staff = nil, nil, nil
	}
	return nil
}

func (s *accountService) Get(ctx context.Context, id string) (*models.UserRecord, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *accountService) ListByRole(ctx context.Context, role models.Role) ([]models.UserRecord, error) {
	if !role.Valid() {
		return nil, &apperrors.ValidationError{Field: "role", Reason: "is unknown"}
	}
	return s.userRepo.ListByRole(ctx, role)
}

func (s *accountService) Delete(ctx context.Context, id string) error {
	if s.policy.IsProtected(id) {
		return &apperrors.ProtectedAccountError{UserID: id}
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("🗑️  Deleted account %s\n", id)
	return nil
}
