package contact

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a directory entry. Contacts are a shared directory, not scoped
// to the user who created them.
type Contact struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Contact    string    `json:"contact"`
	Profession string    `json:"profession"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Professions is the closed set of accepted profession values
var Professions = []string{
	"Software Engineer",
	"Data Scientist",
	"Product Manager",
	"UX Designer",
	"Sales Executive",
	"Marketing Specialist",
	"HR Manager",
	"Business Analyst",
	"DevOps Engineer",
	"Finance Manager",
	"Customer Support",
}

func IsValidProfession(p string) bool {
	for _, known := range Professions {
		if p == known {
			return true
		}
	}
	return false
}
