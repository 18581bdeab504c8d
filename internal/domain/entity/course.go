package entity

import "time"

// Skill tiers accepted on a course.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course belongs to exactly one bootcamp and cannot outlive it.
type Course struct {
	ID                   string    `json:"id"`
	BootcampID           string    `json:"bootcamp_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              int       `json:"tuition"`
	MinimumSkill         string    `json:"minimum_skill"`
	ScholarshipAvailable bool      `json:"scholarship_available"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// Populated parent summary on single-course reads.
	Bootcamp *BootcampRef `json:"bootcamp,omitempty"`
}

// BootcampRef is the slim parent projection attached when a course is read
// on its own.
type BootcampRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
