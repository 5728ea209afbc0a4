package models

type HighScore struct {
	Score    int    `json:"score" msgpack:"score"`
	Username string `json:"username" msgpack:"username"`
	ULID     string `json:"ulid,omitempty" msgpack:"ulid"`
}

type HighScoreResult struct {
	IsHighScore    bool         `json:"isHighScore"`
	Rank           int          `json:"rank"`
	HighScoreTable []*HighScore `json:"highScoreTable"`
}
