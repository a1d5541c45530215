package models

// PitchData is what a creator fills in to produce a pitch deck.
type PitchData struct {
	Name       string   `json:"name"`
	Niche      string   `json:"niche"`
	Location   string   `json:"location"`
	Handle     string   `json:"handle"`
	Followers  int      `json:"followers"`
	Engagement float64  `json:"engagement"`
	Platforms  []string `json:"platforms"`
	Bio        string   `json:"bio"`
	ProfilePic string   `json:"profilePic,omitempty"`
	Email      string   `json:"email"`
}
