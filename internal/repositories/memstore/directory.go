package memstore

import (
	"context"
	"sort"
	"sync"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
)

// Directory implements repositories.DirectoryRepository.
type Directory struct {
	mu        sync.RWMutex
	colleges  map[string]models.College
	courses   map[string]models.Course
	classes   map[string]models.Class
	offerings map[string]models.Offering
}

var _ repositories.DirectoryRepository = (*Directory)(nil)

func (d *Directory) FindOffering(_ context.Context, id string) (*models.Offering, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	o, ok := d.offerings[id]
	if !ok {
		return nil, &apperrors.NotFoundError{Kind: "offering", ID: id}
	}
	return &o, nil
}

func (d *Directory) FindCourse(_ context.Context, id string) (*models.Course, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.courses[id]
	if !ok {
		return nil, &apperrors.NotFoundError{Kind: "course", ID: id}
	}
	return &c, nil
}

func (d *Directory) ListOfferings(_ context.Context, semester string) ([]models.Offering, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Offering, 0, len(d.offerings))
	for _, o := range d.offerings {
		if semester == "" || o.Semester == semester {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Directory) ListCourses(_ context.Context) ([]models.Course, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Course, 0, len(d.courses))
	for _, c := range d.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Directory) ListClasses(_ context.Context) ([]models.Class, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Class, 0, len(d.classes))
	for _, c := range d.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Directory) ListColleges(_ context.Context) ([]models.College, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.College, 0, len(d.colleges))
	for _, c := range d.colleges {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Directory) UpsertCollege(_ context.Context, college *models.College) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.colleges[college.ID] = *college
	return nil
}

func (d *Directory) UpsertCourse(_ context.Context, course *models.Course) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.courses[course.ID] = *course
	return nil
}

func (d *Directory) UpsertClass(_ context.Context, class *models.Class) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.classes[class.ID] = *class
	return nil
}

func (d *Directory) UpsertOffering(_ context.Context, offering *models.Offering) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offerings[offering.ID] = *offering
	return nil
}

// Users implements repositories.UserRepository.
type Users struct {
	mu    sync.RWMutex
	users map[string]models.UserRecord
}

var _ repositories.UserRepository = (*Users)(nil)

func (u *Users) Create(_ context.Context, user *models.UserRecord) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.users[user.ID]; ok {
		return &apperrors.DuplicateIDError{Kind: "user", ID: user.ID}
	}
	u.users[user.ID] = *user
	return nil
}

func (u *Users) FindByID(_ context.Context, id string) (*models.UserRecord, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	user, ok := u.users[id]
	if !ok {
		return nil, &apperrors.NotFoundError{Kind: "user", ID: id}
	}
	return &user, nil
}

func (u *Users) ListByRole(_ context.Context, role models.Role) ([]models.UserRecord, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]models.UserRecord, 0)
	for _, user := range u.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (u *Users) Delete(_ context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.users[id]; !ok {
		return &apperrors.NotFoundError{Kind: "user", ID: id}
	}
	delete(u.users, id)
	return nil
}
