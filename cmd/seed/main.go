package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/campdir/campdir-api/config"
	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/pkg/helpers"
)

// Seeds an admin, a publisher and a sample bootcamp with two courses so the
// API is explorable right after the first migration.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminID := seedUser(db, "Admin Account", "admin@campdir.dev", "password123", entity.RoleAdmin)
	publisherID := seedUser(db, "Devworks Publisher", "publisher@campdir.dev", "password123", entity.RolePublisher)
	fmt.Printf("seeded users: admin=%s publisher=%s\n", adminID, publisherID)

	b := &entity.Bootcamp{
		Name:        "Devworks Bootcamp",
		Description: "Devworks is a full stack JavaScript bootcamp located in the heart of Boston that focuses on the technologies you need to get a high paying job as a web developer",
		Website:     "https://devworks.com",
		Phone:       "(111) 111-1111",
		Email:       "enroll@devworks.com",
		Address:     "233 Bay State Rd Boston MA 02215",
		Housing:     true,
		UserID:      publisherID,
	}
	b.Slug = entity.Slugify(b.Name)

	// database/sql has no []string support, so careers go in as an array literal
	careers := `{"Web Development","UI/UX","Business"}`

	var bootcampID string
	err = db.QueryRow(`
		INSERT INTO bootcamps (name, slug, description, website, phone, email, address, careers, housing, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text[], $9, $10::uuid)
		ON CONFLICT (slug) DO UPDATE SET description = EXCLUDED.description
		RETURNING id::text
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address, careers, b.Housing, b.UserID).Scan(&bootcampID)
	if err != nil {
		log.Fatalf("failed to seed bootcamp: %v", err)
	}
	fmt.Printf("seeded bootcamp: id=%s slug=%s\n", bootcampID, b.Slug)

	seedCourse(db, bootcampID, "Front End Web Development", 8, 8000, entity.SkillBeginner)
	seedCourse(db, bootcampID, "Full Stack Web Development", 12, 10000, entity.SkillIntermediate)

	if _, err := db.Exec(`
		UPDATE bootcamps SET average_cost = (
			SELECT CEIL(AVG(tuition))::int FROM courses WHERE bootcamp_id = $1::uuid
		) WHERE id = $1::uuid
	`, bootcampID); err != nil {
		log.Fatalf("failed to refresh average cost: %v", err)
	}
	fmt.Println("seed complete")
}

func seedUser(db *sql.DB, name, email, password, role string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, role, password)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id::text
	`, name, email, role, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}

func seedCourse(db *sql.DB, bootcampID, title string, weeks, tuition int, skill string) {
	_, err := db.Exec(`
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill, bootcamp_id)
		VALUES ($1, $2, $3, $4, $5, $6::uuid)
		ON CONFLICT DO NOTHING
	`, title, title+" course at Devworks", weeks, tuition, skill, bootcampID)
	if err != nil {
		log.Fatalf("failed to seed course %s: %v", title, err)
	}
}
