package fan

import "time"

const (
	MembershipRegular = "regular"
	MembershipPremium = "premium"
	MembershipVIP     = "vip"
)

// Fan is one registered supporter.
type Fan struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Team            TeamRef   `json:"team"`
	JoinDate        time.Time `json:"joinDate"`
	MembershipLevel string    `json:"membershipLevel"`
	Interests       []string  `json:"interests"`
	Bio             string    `json:"bio"`
}

type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func MembershipLevels() []string {
	return []string{MembershipRegular, MembershipPremium, MembershipVIP}
}

// InterestOptions is the predefined tag set offered on the fan form.
func InterestOptions() []string {
	return []string{"News", "Match Updates", "Statistics", "Events", "Merchandise", "Community"}
}
