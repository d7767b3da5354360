package entity

type User struct {
	FID         string `json:"fid"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Stats - per-user game totals kept in the statistics store.
type Stats struct {
	FID           string `json:"fid"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Ties          int    `json:"ties"`
	CurrentStreak int    `json:"current_streak"`
	BestStreak    int    `json:"best_streak"`
}
