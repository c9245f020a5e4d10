package domain

// AdminStats holds the aggregate counts shown on the moderation dashboard.
type AdminStats struct {
	Users         int `json:"users"`
	Events        int `json:"events"`
	Apps          int `json:"apps"`
	Registrations int `json:"registrations"`
	CheckIns      int `json:"check_ins"`
	Reports       int `json:"reports"`
}
