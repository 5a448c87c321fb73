package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Event struct {
	ID           int64           `db:"id" json:"id"`
	Title        string          `db:"title" json:"title"`
	Description  string          `db:"description" json:"description"`
	Organizer    string          `db:"organizer" json:"organizer"`
	Date         string          `db:"date" json:"date"`
	Location     string          `db:"location" json:"location"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Image        string          `db:"image" json:"image"`
	Category     string          `db:"category" json:"category"`
	Participants int64           `db:"participants" json:"participants"`
	CollegeID    int64           `db:"college_id" json:"college_id"`
	Approved     bool            `db:"approved" json:"approved"`
	CreatedAt    string          `db:"created_at" json:"created_at"`

	// CollegeName is filled by joined reads only.
	CollegeName *string `db:"college_name" json:"college_name"`
}

type Challenge struct {
	ID               int64           `db:"id" json:"id"`
	Title            string          `db:"title" json:"title"`
	Description      string          `db:"description" json:"description"`
	ShortDescription string          `db:"short_description" json:"shortDescription"`
	Category         string          `db:"category" json:"category"`
	Deadline         string          `db:"deadline" json:"deadline"`
	Participants     int64           `db:"participants" json:"participants"`
	Status           string          `db:"status" json:"status"`
	Rules            Rules           `db:"rules" json:"rules"`
	Prizes           string          `db:"prizes" json:"prizes"`
	Price            decimal.Decimal `db:"price" json:"price"`
	CollegeID        int64           `db:"college_id" json:"college_id"`
	Approved         bool            `db:"approved" json:"approved"`
	CreatedAt        string          `db:"created_at" json:"created_at"`

	CollegeName *string `db:"college_name" json:"college_name"`
}

// Item is the payable view shared by events and challenges.
type Item struct {
	Kind  ItemKind
	ID    int64
	Title string
	Price decimal.Decimal
}

// MinorUnits converts the price into the processor's smallest currency unit,
// rounding half away from zero.
func (i Item) MinorUnits() int64 {
	return i.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
