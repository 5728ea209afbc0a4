package models

type Scorecard struct {
	ULID    string `json:"ulid" msgpack:"ulid"`
	Beef    int    `json:"beef" msgpack:"beef"`
	Fish    int    `json:"fish" msgpack:"fish"`
	Chicken int    `json:"chicken" msgpack:"chicken"`
	Veg     int    `json:"veg" msgpack:"veg"`
	Total   int    `json:"total" msgpack:"total"`
}

func NewScorecard(ulid string) *Scorecard {
	return &Scorecard{ULID: ulid}
}

// Count bumps the counter of a known food. Unknown foods only bump Total.
func (s *Scorecard) Count(food Food) {
	s.Total++
	if !food.Valid() {
		return
	}

	switch food {
	case FoodChicken:
		s.Chicken++
	case FoodFish:
		s.Fish++
	case FoodBeef:
		s.Beef++
	case FoodVeg:
		s.Veg++
	}
}

type TallyAck struct {
	ULID string `json:"ulid"`
}
