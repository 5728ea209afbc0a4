package services

import (
	"github.com/mroth/weightedrand/v2"
)

type ServiceGacha[T any] struct {
	chooser *weightedrand.Chooser[T, int]
}

func NewServiceGacha[T any](choices []weightedrand.Choice[T, int]) (*ServiceGacha[T], error) {
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil, err
	}

	return &ServiceGacha[T]{chooser}, nil
}

// NewUniformGacha gives every item the same chance.
func NewUniformGacha[T any](items []T) (*ServiceGacha[T], error) {
	choices := make([]weightedrand.Choice[T, int], 0, len(items))
	for _, item := range items {
		choices = append(choices, weightedrand.NewChoice(item, 1))
	}

	return NewServiceGacha(choices)
}

func (service *ServiceGacha[T]) Pick() T {
	return service.chooser.Pick()
}
