package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/pkg/geocode"
)

// In-memory repository doubles for service tests.

type stubUsers struct {
	byID      map[string]*entity.User
	updateErr error
	updates   []entity.User
}

func newStubUsers(users ...*entity.User) *stubUsers {
	s := &stubUsers{byID: map[string]*entity.User{}}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = "generated-id"
	}
	s.byID[u.ID] = u
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUsers) GetByResetToken(_ context.Context, hashed string, now time.Time) (*entity.User, error) {
	for _, u := range s.byID {
		if u.ResetPasswordToken == hashed && u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUsers) Update(_ context.Context, u *entity.User) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, *u)
	s.byID[u.ID] = u
	return nil
}

func (s *stubUsers) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.byID, id)
	return nil
}

func (s *stubUsers) List(context.Context, query.Spec) ([]map[string]any, int, error) {
	return nil, 0, nil
}

type stubBootcamps struct {
	byID     map[string]*entity.Bootcamp
	ownerHas bool

	created []*entity.Bootcamp
	updated []*entity.Bootcamp
	deleted []string
	photos  map[string]string
}

func newStubBootcamps(bootcamps ...*entity.Bootcamp) *stubBootcamps {
	s := &stubBootcamps{byID: map[string]*entity.Bootcamp{}, photos: map[string]string{}}
	for _, b := range bootcamps {
		s.byID[b.ID] = b
	}
	return s
}

func (s *stubBootcamps) Create(_ context.Context, b *entity.Bootcamp) error {
	if b.ID == "" {
		b.ID = "generated-id"
	}
	s.byID[b.ID] = b
	s.created = append(s.created, b)
	return nil
}

func (s *stubBootcamps) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	if b, ok := s.byID[id]; ok {
		return b, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubBootcamps) OwnerHasBootcamp(_ context.Context, userID string) (bool, error) {
	return s.ownerHas, nil
}

func (s *stubBootcamps) Update(_ context.Context, b *entity.Bootcamp) error {
	s.byID[b.ID] = b
	s.updated = append(s.updated, b)
	return nil
}

func (s *stubBootcamps) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBootcamps) List(context.Context, query.Spec, bool) ([]map[string]any, int, error) {
	return nil, 0, nil
}

func (s *stubBootcamps) WithinRadius(context.Context, float64, float64, float64) ([]*entity.Bootcamp, error) {
	return nil, nil
}

func (s *stubBootcamps) SetPhoto(_ context.Context, id, filename string) error {
	s.photos[id] = filename
	return nil
}

type stubCourses struct {
	byID        map[string]*entity.Course
	recalcs     []string
	created     []*entity.Course
	deleted     []string
}

func newStubCourses(courses ...*entity.Course) *stubCourses {
	s := &stubCourses{byID: map[string]*entity.Course{}}
	for _, c := range courses {
		s.byID[c.ID] = c
	}
	return s
}

func (s *stubCourses) Create(_ context.Context, c *entity.Course) error {
	if c.ID == "" {
		c.ID = "generated-id"
	}
	s.byID[c.ID] = c
	s.created = append(s.created, c)
	return nil
}

func (s *stubCourses) GetByID(_ context.Context, id string) (*entity.Course, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubCourses) Update(_ context.Context, c *entity.Course) error {
	s.byID[c.ID] = c
	return nil
}

func (s *stubCourses) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCourses) List(context.Context, query.Spec) ([]map[string]any, int, error) {
	return nil, 0, nil
}

func (s *stubCourses) ListByBootcamp(context.Context, string, query.Spec) ([]map[string]any, int, error) {
	return nil, 0, nil
}

func (s *stubCourses) RecalcAverageCost(_ context.Context, bootcampID string) error {
	s.recalcs = append(s.recalcs, bootcampID)
	return nil
}

type stubMailer struct {
	fail bool
	sent []string
}

func (m *stubMailer) Send(_ context.Context, to, subject, text string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, to)
	return nil
}

type stubGeocoder struct {
	loc geocode.Location
	err error
}

func (g *stubGeocoder) Geocode(context.Context, string) (geocode.Location, error) {
	return g.loc, g.err
}

type stubStore struct {
	saved map[string]string
	err   error
}

func newStubStore() *stubStore { return &stubStore{saved: map[string]string{}} }

func (s *stubStore) Save(_ context.Context, name, contentType string, _ io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved[name] = contentType
	return name, nil
}
