package admin

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is the document collection holding admin users.
const Collection = "adminuser"

// Staff roles allowed to use the backend.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a staff account. The password hash never leaves this package.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at,omitempty" json:"updated_at"`
}

// Profile is the public view of a user returned on login.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Profile builds the public view of u.
func (u *User) Profile() Profile {
	return Profile{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
