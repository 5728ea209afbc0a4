package models

type Food string

const (
	FoodChicken Food = "chicken"
	FoodFish    Food = "fish"
	FoodBeef    Food = "beef"
	FoodVeg     Food = "veg"
)

var Foods = []Food{FoodChicken, FoodFish, FoodBeef, FoodVeg}

func (f Food) Valid() bool {
	switch f {
	case FoodChicken, FoodFish, FoodBeef, FoodVeg:
		return true
	}
	return false
}

type MenuItem struct {
	Demand Food `json:"demand" msgpack:"demand"`
	Offset int  `json:"offset" msgpack:"offset"`
}

type Session struct {
	ID   string     `json:"id"`
	Menu []MenuItem `json:"menu"`
}
