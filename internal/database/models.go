package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database model for an account record.
// PasswordHash is empty for accounts created through Google OAuth.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull,default:''"`
	Contact      string    `bun:"contact,notnull,default:''"`
	ProfilePic   string    `bun:"profile_pic,notnull,default:''"`
	IsVerified   bool      `bun:"is_verified,notnull,default:false"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Contact is the database model for an address-book entry.
// It has no relationship to User.
type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:c"`

	ID         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name       string    `bun:"name,notnull"`
	Email      string    `bun:"email,notnull"`
	Contact    string    `bun:"contact,notnull"`
	Profession string    `bun:"profession,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
