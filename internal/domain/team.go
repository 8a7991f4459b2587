package domain

import "time"

type Team struct {
	ID        uint      `json:"id"`
	Number    string    `json:"number"`
	Name      string    `json:"name"`
	School    string    `json:"school"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleJudge = "judge"
	RoleAdmin = "admin"
)

type Operator struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // "judge" or "admin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
