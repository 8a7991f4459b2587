package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/trackside/scorekeeper-api/internal/config"
	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository/dao"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		conf.Host, conf.Port, conf.User, conf.Password, conf.DB, conf.SSLMode,
	)

	return open(dsn)
}

func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	return open(url)
}

func open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err = dao.InitTables(database); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	if err = Seed(database); err != nil {
		return nil, fmt.Errorf("db.Seed -> %w", err)
	}

	return database, nil
}

// Seed installs the default scoring configuration and the seed registry on an
// empty database. Existing records are left alone, so it is safe on every
// start.
func Seed(database *gorm.DB) error {
	ctx := context.Background()

	configDAO := dao.NewScoringConfigDAO(database)
	if _, err := configDAO.Get(ctx); err != nil {
		if !errors.Is(err, dao.ErrConfigNotFound) {
			return err
		}

		defaults := domain.DefaultScoringConfig()
		obstacles := make([]dao.ObstacleItem, 0, len(defaults.Obstacles))
		for _, o := range defaults.Obstacles {
			obstacles = append(obstacles, dao.ObstacleItem{ID: o.ID, Name: o.Name, MaxPoints: o.MaxPoints})
		}
		penalties := make([]dao.PenaltyItem, 0, len(defaults.Penalties))
		for _, p := range defaults.Penalties {
			penalties = append(penalties, dao.PenaltyItem{ID: p.ID, Name: p.Name, Points: p.Points})
		}

		if _, err = configDAO.Save(ctx, dao.ScoringConfig{
			BasePoints:       defaults.BasePoints,
			TimeoutDeduction: defaults.TimeoutDeduction,
			Obstacles:        obstacles,
			Penalties:        penalties,
		}); err != nil {
			return err
		}
	}

	var teamCount int64
	if err := database.Model(&dao.Team{}).Count(&teamCount).Error; err != nil {
		return err
	}
	if teamCount == 0 {
		teamDAO := dao.NewTeamDAO(database)
		for _, t := range domain.SeedTeams() {
			if _, err := teamDAO.Insert(ctx, dao.Team{
				Number: t.Number,
				Name:   t.Name,
				School: t.School,
			}); err != nil {
				return err
			}
		}
	}

	return nil
}
