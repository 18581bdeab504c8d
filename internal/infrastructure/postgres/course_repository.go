package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/internal/domain/repository"
)

var courseColumns = []Column{
	{Name: "id", Type: ColUUID},
	{Name: "bootcamp_id", Type: ColUUID},
	{Name: "title", Type: ColText},
	{Name: "description", Type: ColText},
	{Name: "weeks", Type: ColInt},
	{Name: "tuition", Type: ColInt},
	{Name: "minimum_skill", Type: ColText},
	{Name: "scholarship_available", Type: ColBool},
	{Name: "created_at", Type: ColTime},
	{Name: "updated_at", Type: ColTime},
}

type CourseRepository struct {
	pool       *pgxpool.Pool
	collection *Collection
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool, collection: NewCollection("courses", courseColumns)}
}

const courseFields = `id::text, bootcamp_id::text, title, description, weeks, tuition,
	minimum_skill, scholarship_available, created_at, updated_at`

func scanCourse(row interface{ Scan(...any) error }) (*entity.Course, error) {
	c := &entity.Course{}
	err := row.Scan(&c.ID, &c.BootcampID, &c.Title, &c.Description, &c.Weeks, &c.Tuition,
		&c.MinimumSkill, &c.ScholarshipAvailable, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (bootcamp_id, title, description, weeks, tuition,
			minimum_skill, scholarship_available)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at, updated_at
	`, c.BootcampID, c.Title, c.Description, c.Weeks, c.Tuition,
		c.MinimumSkill, c.ScholarshipAvailable)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID also loads the slim parent bootcamp reference.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	c := &entity.Course{}
	ref := &entity.BootcampRef{}
	err := r.pool.QueryRow(ctx, `
		SELECT c.id::text, c.bootcamp_id::text, c.title, c.description, c.weeks, c.tuition,
		       c.minimum_skill, c.scholarship_available, c.created_at, c.updated_at,
		       b.id::text, b.name, b.description
		FROM courses c
		JOIN bootcamps b ON b.id = c.bootcamp_id
		WHERE c.id = $1::uuid
	`, id).Scan(&c.ID, &c.BootcampID, &c.Title, &c.Description, &c.Weeks, &c.Tuition,
		&c.MinimumSkill, &c.ScholarshipAvailable, &c.CreatedAt, &c.UpdatedAt,
		&ref.ID, &ref.Name, &ref.Description)
	if err != nil {
		return nil, err
	}
	c.Bootcamp = ref
	return c, nil
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	if err := checkID(c.ID); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4,
		    minimum_skill = $5, scholarship_available = $6, updated_at = $7
		WHERE id = $8::uuid
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill,
		c.ScholarshipAvailable, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CourseRepository) List(ctx context.Context, spec query.Spec) ([]map[string]any, int, error) {
	return r.collection.Find(ctx, r.pool, spec)
}

// ListByBootcamp narrows the spec to one parent bootcamp.
func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID string, spec query.Spec) ([]map[string]any, int, error) {
	if err := checkID(bootcampID); err != nil {
		return nil, 0, err
	}
	spec.Conditions = append(spec.Conditions, query.Condition{
		Field: "bootcamp_id", Op: query.OpEq, Values: []string{bootcampID},
	})
	return r.collection.Find(ctx, r.pool, spec)
}

// RecalcAverageCost mirrors the aggregate kept on the parent: ceil of the
// average tuition over the bootcamp's remaining courses, null when none.
func (r *CourseRepository) RecalcAverageCost(ctx context.Context, bootcampID string) error {
	if err := checkID(bootcampID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE bootcamps
		SET average_cost = (SELECT CEIL(AVG(tuition))::int FROM courses WHERE bootcamp_id = $1::uuid)
		WHERE id = $1::uuid
	`, bootcampID)
	return err
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
