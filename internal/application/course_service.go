package application

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/internal/domain/repository"
	"github.com/campdir/campdir-api/pkg/apperr"
)

type CourseService struct {
	Courses   repository.CourseRepository
	Bootcamps repository.BootcampRepository
	Logger    *logrus.Logger
}

func NewCourseService(courses repository.CourseRepository, bootcamps repository.BootcampRepository, logger *logrus.Logger) *CourseService {
	return &CourseService{Courses: courses, Bootcamps: bootcamps, Logger: logger}
}

func (s *CourseService) List(ctx context.Context, spec query.Spec) ([]map[string]any, int, error) {
	return s.Courses.List(ctx, spec)
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID string, spec query.Spec) ([]map[string]any, int, error) {
	if _, err := s.parentBootcamp(ctx, bootcampID); err != nil {
		return nil, 0, err
	}
	return s.Courses.ListByBootcamp(ctx, bootcampID, spec)
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course", id)
		}
		return nil, err
	}
	return c, nil
}

type CourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              int
	MinimumSkill         string
	ScholarshipAvailable bool
}

// Create adds a course under a bootcamp the caller may mutate, then
// refreshes the parent's average cost.
func (s *CourseService) Create(ctx context.Context, caller *entity.User, bootcampID string, in CourseInput) (*entity.Course, error) {
	b, err := s.parentBootcamp(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if !CanMutate(caller, b.UserID) {
		return nil, apperr.Unauthorized("User %s is not authorized to add a course to bootcamp %s", caller.ID, bootcampID)
	}

	c := &entity.Course{
		BootcampID:           bootcampID,
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, err
	}
	s.recalc(ctx, bootcampID)
	return c, nil
}

type CourseUpdate struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *int
	MinimumSkill         *string
	ScholarshipAvailable *bool
}

func (s *CourseService) Update(ctx context.Context, caller *entity.User, id string, in CourseUpdate) (*entity.Course, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, caller, c, "update course"); err != nil {
		return nil, err
	}

	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Weeks != nil {
		c.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	if in.MinimumSkill != nil {
		c.MinimumSkill = *in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}
	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, err
	}
	s.recalc(ctx, c.BootcampID)
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, caller *entity.User, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, caller, c, "delete course"); err != nil {
		return err
	}
	if err := s.Courses.Delete(ctx, id); err != nil {
		return err
	}
	s.recalc(ctx, c.BootcampID)
	return nil
}

// authorize checks the caller against the owning bootcamp's owner.
func (s *CourseService) authorize(ctx context.Context, caller *entity.User, c *entity.Course, action string) error {
	b, err := s.parentBootcamp(ctx, c.BootcampID)
	if err != nil {
		return err
	}
	if !CanMutate(caller, b.UserID) {
		return apperr.Unauthorized("User %s is not authorized to %s %s", caller.ID, action, c.ID)
	}
	return nil
}

func (s *CourseService) parentBootcamp(ctx context.Context, bootcampID string) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Bootcamp", bootcampID)
		}
		return nil, err
	}
	return b, nil
}

func (s *CourseService) recalc(ctx context.Context, bootcampID string) {
	if err := s.Courses.RecalcAverageCost(ctx, bootcampID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", bootcampID).Warn("average cost recalculation failed")
	}
}
