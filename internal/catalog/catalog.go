// Package catalog serves the static course listing shown next to the
// creation wizard: slicing for pagination and the header summary numbers.
package catalog

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPublished  Status = "published"
	StatusInCreation Status = "in_creation"
)

type Course struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Owner        string    `json:"owner"`
	Category     string    `json:"category"`
	CreationDate time.Time `json:"creation_date"`
	Duration     string    `json:"duration"`
	Enrolled     int       `json:"enrolled"`
	Finished     int       `json:"finished"`
	Status       Status    `json:"status"`
}

// Summary aggregates the listing for the header panel.
type Summary struct {
	TotalCourses  int `json:"total_courses"`
	Published     int `json:"published"`
	InCreation    int `json:"in_creation"`
	TotalEnrolled int `json:"total_enrolled"`
	TotalFinished int `json:"total_finished"`
}

type Catalog struct {
	courses []Course
}

// New builds a catalog over a fixed course list.
func New(courses []Course) *Catalog {
	return &Catalog{courses: courses}
}

// NewSeeded builds a catalog with a deterministic demo listing, the way the
// prototype ships with sample data.
func NewSeeded() *Catalog {
	return New(seedCourses())
}

// Page returns one page of the listing plus the total course count. Pages
// are 1-based; out-of-range pages return an empty slice.
func (c *Catalog) Page(page, perPage int) ([]Course, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	start := (page - 1) * perPage
	if start >= len(c.courses) {
		return []Course{}, len(c.courses)
	}

	end := start + perPage
	if end > len(c.courses) {
		end = len(c.courses)
	}
	return c.courses[start:end], len(c.courses)
}

// Summary computes the aggregate numbers over the whole listing.
func (c *Catalog) Summary() Summary {
	summary := Summary{TotalCourses: len(c.courses)}
	for _, course := range c.courses {
		summary.TotalEnrolled += course.Enrolled
		summary.TotalFinished += course.Finished
		switch course.Status {
		case StatusPublished:
			summary.Published++
		default:
			summary.InCreation++
		}
	}
	return summary
}

var seedTemplates = []struct {
	name     string
	category string
	status   Status
}{
	{"Introduction to Digital Marketing", "Marketing", StatusPublished},
	{"Project Management with Scrum", "Development", StatusInCreation},
	{"Design Thinking for Innovation", "Design", StatusPublished},
	{"Interpersonal Communication", "Communications", StatusInCreation},
	{"Fundamentals of Finance", "Entrepreneurship", StatusPublished},
}

var seedOwners = []string{"Super Admin", "Admin Stage", "Bolivar", "Lucas Oliveira", "Maria Fernanda"}

func seedCourses() []Course {
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	courses := make([]Course, 0, 120)
	for i := 0; i < 120; i++ {
		template := seedTemplates[i%len(seedTemplates)]
		course := Course{
			ID:           fmt.Sprintf("course-%d", i+1),
			Name:         fmt.Sprintf("%s v%d", template.name, i/len(seedTemplates)+1),
			Owner:        seedOwners[i%len(seedOwners)],
			Category:     template.category,
			CreationDate: base.AddDate(0, 0, -3*i),
			Duration:     fmt.Sprintf("%d h %02d min", i%4, (i*7)%60),
			Status:       template.status,
		}
		if template.status == StatusPublished {
			course.Enrolled = (i * 13) % 200
			course.Finished = course.Enrolled / 2
		}
		courses = append(courses, course)
	}
	return courses
}
