package services

import (
	"context"
	"time"

	"finicky/internal/models"
	"finicky/internal/pkg"
	"finicky/internal/pkg/toui"

	"github.com/samber/do"
)

type ServiceSession struct {
	container *do.Injector
	foods     *ServiceGacha[models.Food]
	now       func() time.Time
}

func NewServiceSession(container *do.Injector) (*ServiceSession, error) {
	foods, err := NewUniformGacha(models.Foods)
	if err != nil {
		return nil, err
	}

	return &ServiceSession{container, foods, time.Now}, nil
}

// IssueSession hands out a fresh session id and its menu. Nothing is persisted:
// the id carries its own creation time, which is all ValidateSession needs.
func (service *ServiceSession) IssueSession(ctx context.Context) *models.Session {
	return &models.Session{
		ID:   toui.New(service.now()).String(),
		Menu: service.generateMenu(),
	}
}

func (service *ServiceSession) generateMenu() []models.MenuItem {
	var menu []models.MenuItem
	for offset := 0; offset < MENU_MAX_OFFSET; offset += pkg.RandomIntInclusive(MENU_MIN_STEP, MENU_MAX_STEP) {
		menu = append(menu, models.MenuItem{
			Demand: service.foods.Pick(),
			Offset: offset,
		})
	}

	return menu
}
