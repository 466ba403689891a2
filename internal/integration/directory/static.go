package directory

import (
	"context"

	"github.com/futig/outreach-backend/internal/entity"
)

// StaticDirectory answers every lookup with the same demo recruiter and
// organization, whatever the id.
type StaticDirectory struct{}

func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{}
}

func (d *StaticDirectory) UserContext(_ context.Context, _ string) (entity.ContextRecord, error) {
	return entity.ContextRecord{
		"name":     "John Doe",
		"title":    "Technical Recruiter",
		"company":  "TechCorp Inc.",
		"email":    "john.doe@techcorp.com",
		"linkedin": "linkedin.com/in/johndoe",
	}, nil
}

func (d *StaticDirectory) OrgContext(_ context.Context, _ string) (entity.ContextRecord, error) {
	return entity.ContextRecord{
		"name":         "TechCorp Inc.",
		"industry":     "Technology",
		"description":  "Leading software development company specializing in AI and machine learning solutions",
		"website":      "techcorp.com",
		"locations":    []any{"San Francisco", "New York", "London"},
		"company_size": "500-1000 employees",
	}, nil
}
