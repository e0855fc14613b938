package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(id, name, email, role, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *User) UpdateName(name string) {
	u.Name = name
	u.touch()
}

func (u *User) UpdateEmail(email string) {
	u.Email = email
	u.touch()
}

func (u *User) ChangeRole(role string) {
	u.Role = role
	u.touch()
}

func (u *User) Activate() {
	u.IsActive = true
	u.touch()
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.touch()
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
}
