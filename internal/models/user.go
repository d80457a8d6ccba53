package models

const UnknownProfileValue = "Unknown"

type User struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"uniqueIndex;not null"`
	FirstName   string `gorm:"column:first_name;not null"`
	LastName    string `gorm:"column:last_name;not null"`
	Password    string `gorm:"not null"`
	Education   string `gorm:"default:Unknown"`
	Employment  string `gorm:"default:Unknown"`
	Music       string `gorm:"default:Unknown"`
	Movie       string `gorm:"default:Unknown"`
	Nationality string `gorm:"default:Unknown"`
	Birthday    string `gorm:"default:Unknown"`
}

// Profile holds the attributes a user may change after registration.
type Profile struct {
	Education   string
	Employment  string
	Music       string
	Movie       string
	Nationality string
	Birthday    string
}

func DefaultProfile() Profile {
	return Profile{
		Education:   UnknownProfileValue,
		Employment:  UnknownProfileValue,
		Music:       UnknownProfileValue,
		Movie:       UnknownProfileValue,
		Nationality: UnknownProfileValue,
		Birthday:    UnknownProfileValue,
	}
}

func (u *User) Profile() Profile {
	return Profile{
		Education:   u.Education,
		Employment:  u.Employment,
		Music:       u.Music,
		Movie:       u.Movie,
		Nationality: u.Nationality,
		Birthday:    u.Birthday,
	}
}

func (u *User) SetProfile(p Profile) {
	u.Education = p.Education
	u.Employment = p.Employment
	u.Music = p.Music
	u.Movie = p.Movie
	u.Nationality = p.Nationality
	u.Birthday = p.Birthday
}
