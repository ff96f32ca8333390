package server

type EventPayload struct {
	GameCode  string `json:"game_code,omitempty"`
	Title     string `json:"title,omitempty"`
	Status    string `json:"status,omitempty"`
	Previous  string `json:"previous,omitempty"`
	TeamID    uint   `json:"team_id,omitempty"`
	TeamName  string `json:"team,omitempty"`
	KeywordID uint   `json:"keyword_id,omitempty"`
	Keyword   string `json:"keyword,omitempty"`
	Points    int    `json:"points,omitempty"`
	ClaimID   uint   `json:"claim_id,omitempty"`
	PhotoPath string `json:"photo_path,omitempty"`
	Count     int    `json:"count,omitempty"`
}
