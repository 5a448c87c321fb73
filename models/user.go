package models

type User struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	CollegeID    *int64 `db:"college_id" json:"college_id"`
	CreatedAt    string `db:"created_at" json:"created_at"`
}

// PublicUser is the only user shape that leaves the service.
type PublicUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CollegeID *int64 `json:"college_id"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CollegeID: u.CollegeID,
	}
}
