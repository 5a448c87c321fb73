// Package seed fills an empty database with a starter catalog.
package seed

import (
	"context"
	"log/slog"

	"eventify/internal/store"
	"eventify/models"

	"github.com/shopspring/decimal"
)

type college struct {
	name, shortName, location, state, website, email, phone, description string
	established                                                          int64
	collegeType, affiliation                                             string
}

var colleges = []college{
	{"Indian Institute of Technology Delhi", "IIT Delhi", "Hauz Khas, New Delhi", "Delhi", "https://www.iitd.ac.in", "info@iitd.ac.in", "+91-11-2659-1938", "Premier engineering and technology institute", 1961, "Engineering", "IIT System"},
	{"Indian Institute of Technology Bombay", "IIT Bombay", "Powai, Mumbai", "Maharashtra", "https://www.iitb.ac.in", "info@iitb.ac.in", "+91-22-2572-2545", "Leading technical education and research institute", 1958, "Engineering", "IIT System"},
	{"Indian Institute of Science", "IISc Bangalore", "Bangalore", "Karnataka", "https://www.iisc.ac.in", "info@iisc.ac.in", "+91-80-2293-2001", "Premier institute for advanced scientific and technological research", 1909, "Science & Research", "Autonomous"},
	{"Delhi University", "DU", "Delhi", "Delhi", "https://www.du.ac.in", "info@du.ac.in", "+91-11-2766-7077", "One of India's largest universities", 1922, "University", "Central University"},
	{"Jawaharlal Nehru University", "JNU", "New Delhi", "Delhi", "https://www.jnu.ac.in", "info@jnu.ac.in", "+91-11-2670-4000", "Premier university for social sciences and humanities", 1969, "University", "Central University"},
	{"Indian Institute of Technology Madras", "IIT Madras", "Chennai", "Tamil Nadu", "https://www.iitm.ac.in", "info@iitm.ac.in", "+91-44-2257-4000", "Leading engineering and technology institute", 1959, "Engineering", "IIT System"},
	{"Banaras Hindu University", "BHU", "Varanasi", "Uttar Pradesh", "https://www.bhu.ac.in", "info@bhu.ac.in", "+91-542-230-7000", "One of the largest residential universities in Asia", 1916, "University", "Central University"},
	{"Anna University", "Anna Univ", "Chennai", "Tamil Nadu", "https://www.annauniv.edu", "info@annauniv.edu", "+91-44-2235-8000", "Technical university in Tamil Nadu", 1978, "Engineering", "State University"},
	{"Jadavpur University", "JU", "Kolkata", "West Bengal", "https://www.jaduniv.edu.in", "info@jaduniv.edu.in", "+91-33-2414-6666", "Premier university known for engineering and arts", 1955, "University", "State University"},
	{"Manipal Institute of Technology", "MIT Manipal", "Manipal", "Karnataka", "https://www.manipal.edu", "info@manipal.edu", "+91-820-292-3000", "Leading private engineering institute", 1957, "Engineering", "Deemed University"},
}

var events = []models.Event{
	{
		Title:       "Tech Innovation Summit 2024",
		Description: "Annual technology conference featuring latest innovations in AI, ML, and Web3",
		Organizer:   "Tech Society",
		Date:        "March 15, 2024",
		Location:    "Main Auditorium",
		Price:       decimal.NewFromInt(2999),
		Image:       "https://images.unsplash.com/photo-1540575467063-178a50c2df87",
		Category:    "Technology",
	},
	{
		Title:       "Cultural Fest 2024",
		Description: "Annual cultural festival with music, dance, and art competitions",
		Organizer:   "Cultural Committee",
		Date:        "April 20, 2024",
		Location:    "Campus Grounds",
		Price:       decimal.NewFromInt(1500),
		Image:       "https://images.unsplash.com/photo-1559136555-9303baea8ebd",
		Category:    "Cultural",
	},
	{
		Title:       "Hackathon 2024",
		Description: "48-hour coding competition to solve real-world problems",
		Organizer:   "Programming Club",
		Date:        "May 10, 2024",
		Location:    "Computer Center",
		Price:       decimal.NewFromInt(999),
		Image:       "https://images.unsplash.com/photo-1504384308090-c894fdcc538d",
		Category:    "Technology",
	},
}

// Challenge rules are written pipe-joined, the legacy input format.
var challenges = []struct {
	challenge models.Challenge
	rules     string
}{
	{
		challenge: models.Challenge{
			Title:            "AI for Good Challenge",
			Description:      "Build a machine learning solution for a social problem of your choice",
			ShortDescription: "ML for social impact",
			Category:         "AI/ML",
			Deadline:         "June 30, 2024",
			Status:           "Open",
			Prizes:           "First prize 50000, runner-up 25000",
			Price:            decimal.NewFromInt(499),
		},
		rules: "Teams of up to 4 members|Submissions must be original work|Source code must be public",
	},
	{
		challenge: models.Challenge{
			Title:            "Campus Startup Pitch",
			Description:      "Pitch a startup idea to a panel of investors and alumni founders",
			ShortDescription: "Pitch to investors",
			Category:         "Entrepreneurship",
			Deadline:         "July 15, 2024",
			Status:           "Open",
			Prizes:           "Seed grant of 100000",
			Price:            decimal.Zero,
		},
		rules: "One pitch per team|Ten minute slot including questions",
	},
}

// eventColleges is how many of the seeded colleges get the sample events.
const eventColleges = 5

// IfEmpty seeds the catalog when there are no colleges yet and reports
// whether it did. Everything is written in one transaction.
func IfEmpty(ctx context.Context, s *store.Store) (bool, error) {
	count, err := s.CountColleges(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		slog.Info("Database already has colleges, skipping seed", "colleges", count)
		return false, nil
	}

	err = s.RunInTransaction(ctx, func(tx *store.Store) error {
		var ids []int64
		for _, c := range colleges {
			established := c.established
			row := &models.College{
				Name:            c.name,
				ShortName:       c.shortName,
				Location:        c.location,
				State:           c.state,
				Website:         c.website,
				Email:           c.email,
				Phone:           c.phone,
				Description:     c.description,
				EstablishedYear: &established,
				CollegeType:     c.collegeType,
				Affiliation:     c.affiliation,
				Approved:        true,
			}
			if err := tx.CreateCollege(ctx, row); err != nil {
				return err
			}
			ids = append(ids, row.ID)
		}

		for _, collegeID := range ids[:eventColleges] {
			for _, e := range events {
				e.CollegeID = collegeID
				e.Approved = true
				if err := tx.CreateEvent(ctx, &e); err != nil {
					return err
				}
			}
		}

		for i, c := range challenges {
			ch := c.challenge
			ch.Rules = models.SplitRules(c.rules)
			ch.CollegeID = ids[i%len(ids)]
			ch.Approved = true
			if err := tx.CreateChallenge(ctx, &ch); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	slog.Info("Database seeded",
		"colleges", len(colleges),
		"events", eventColleges*len(events),
		"challenges", len(challenges),
	)
	return true, nil
}
