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

var bootcampColumns = []Column{
	{Name: "id", Type: ColUUID},
	{Name: "user_id", Type: ColUUID},
	{Name: "name", Type: ColText},
	{Name: "slug", Type: ColText},
	{Name: "description", Type: ColText},
	{Name: "website", Type: ColText},
	{Name: "phone", Type: ColText},
	{Name: "email", Type: ColText},
	{Name: "address", Type: ColText},
	{Name: "latitude", Type: ColFloat},
	{Name: "longitude", Type: ColFloat},
	{Name: "careers", Type: ColTextArray},
	{Name: "housing", Type: ColBool},
	{Name: "job_assistance", Type: ColBool},
	{Name: "job_guarantee", Type: ColBool},
	{Name: "accept_gi", Type: ColBool},
	{Name: "average_rating", Type: ColFloat},
	{Name: "average_cost", Type: ColInt},
	{Name: "photo", Type: ColText},
	{Name: "created_at", Type: ColTime},
	{Name: "updated_at", Type: ColTime},
}

type BootcampRepository struct {
	pool       *pgxpool.Pool
	collection *Collection
}

func NewBootcampRepository(pool *pgxpool.Pool) *BootcampRepository {
	return &BootcampRepository{pool: pool, collection: NewCollection("bootcamps", bootcampColumns)}
}

const bootcampFields = `id::text, user_id::text, name, slug, description, website, phone, email,
	address, latitude, longitude, careers, housing, job_assistance, job_guarantee,
	accept_gi, average_rating, average_cost, photo, created_at, updated_at`

func scanBootcamp(row interface{ Scan(...any) error }) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Slug, &b.Description, &b.Website, &b.Phone,
		&b.Email, &b.Address, &b.Latitude, &b.Longitude, &b.Careers, &b.Housing,
		&b.JobAssistance, &b.JobGuarantee, &b.AcceptGI, &b.AverageRating, &b.AverageCost,
		&b.Photo, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bootcamps (user_id, name, slug, description, website, phone, email,
			address, latitude, longitude, careers, housing, job_assistance,
			job_guarantee, accept_gi)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id::text, created_at, updated_at
	`, b.UserID, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email,
		b.Address, b.Latitude, b.Longitude, b.Careers, b.Housing, b.JobAssistance,
		b.JobGuarantee, b.AcceptGI)
	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return scanBootcamp(r.pool.QueryRow(ctx, `
		SELECT `+bootcampFields+` FROM bootcamps WHERE id = $1::uuid
	`, id))
}

func (r *BootcampRepository) OwnerHasBootcamp(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bootcamps WHERE user_id = $1::uuid)
	`, userID).Scan(&exists)
	return exists, err
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	if err := checkID(b.ID); err != nil {
		return err
	}
	b.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE bootcamps
		SET name = $1, slug = $2, description = $3, website = $4, phone = $5, email = $6,
		    address = $7, latitude = $8, longitude = $9, careers = $10, housing = $11,
		    job_assistance = $12, job_guarantee = $13, accept_gi = $14, updated_at = $15
		WHERE id = $16::uuid
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address,
		b.Latitude, b.Longitude, b.Careers, b.Housing, b.JobAssistance,
		b.JobGuarantee, b.AcceptGI, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the bootcamp and its courses in one transaction, so a
// course can never outlive its parent.
func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM courses WHERE bootcamp_id = $1::uuid`, id); err != nil {
		return err
	}
	res, err := tx.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *BootcampRepository) List(ctx context.Context, spec query.Spec, withCourses bool) ([]map[string]any, int, error) {
	rows, total, err := r.collection.Find(ctx, r.pool, spec)
	if err != nil || !withCourses || len(rows) == 0 {
		return rows, total, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id, ok := row["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return rows, total, nil
	}

	courses, err := r.coursesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, row := range rows {
		id, _ := row["id"].(string)
		cs := courses[id]
		if cs == nil {
			cs = []*entity.Course{}
		}
		row["courses"] = cs
	}
	return rows, total, nil
}

func (r *BootcampRepository) coursesFor(ctx context.Context, bootcampIDs []string) (map[string][]*entity.Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+courseFields+` FROM courses
		WHERE bootcamp_id = ANY($1::uuid[])
		ORDER BY created_at DESC
	`, bootcampIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]*entity.Course)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out[c.BootcampID] = append(out[c.BootcampID], c)
	}
	return out, rows.Err()
}

// WithinRadius filters by great-circle distance in miles (haversine,
// 3963-mile earth radius).
func (r *BootcampRepository) WithinRadius(ctx context.Context, lat, lng, miles float64) ([]*entity.Bootcamp, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bootcampFields+` FROM bootcamps
		WHERE 3963 * acos(
			least(1.0,
				cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2))
				+ sin(radians($1)) * sin(radians(latitude))
			)
		) <= $3
		ORDER BY created_at DESC
	`, lat, lng, miles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BootcampRepository) SetPhoto(ctx context.Context, id, filename string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE bootcamps SET photo = $1, updated_at = now() WHERE id = $2::uuid
	`, filename, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
