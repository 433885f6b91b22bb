package domain

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID             int64  `db:"id"`
	ExternalID     string `db:"external_id"`
	Email          string `db:"email"`
	HashedPassword string `db:"hashed_password"`
	Role           string `db:"role"`
	CreatedAt      int64  `db:"created_at"`
	UpdatedAt      int64  `db:"updated_at"`
}
