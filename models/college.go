package models

type College struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	ShortName       string `db:"short_name" json:"short_name"`
	Location        string `db:"location" json:"location"`
	State           string `db:"state" json:"state"`
	Website         string `db:"website" json:"website"`
	Email           string `db:"email" json:"email"`
	Phone           string `db:"phone" json:"phone"`
	LogoURL         string `db:"logo_url" json:"logo_url"`
	Description     string `db:"description" json:"description"`
	EstablishedYear *int64 `db:"established_year" json:"established_year"`
	CollegeType     string `db:"college_type" json:"college_type"` // Engineering, Medical, Arts...
	Affiliation     string `db:"affiliation" json:"affiliation"`
	Approved        bool   `db:"approved" json:"approved"`
	CreatedAt       string `db:"created_at" json:"created_at"`
}

// PendingCollege is the reduced projection served to reviewers.
type PendingCollege struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Location  string `json:"location"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
}

func (c *College) Pending() PendingCollege {
	return PendingCollege{
		ID:        c.ID,
		Name:      c.Name,
		ShortName: c.ShortName,
		Location:  c.Location,
		State:     c.State,
		CreatedAt: c.CreatedAt,
	}
}
