package main

import (
	"context"
	"fmt"
	"time"

	"showdan/config"
	"showdan/database"
	"showdan/database/repository"
	currencyRepo "showdan/database/repository/currency"
	userRepo "showdan/database/repository/user"
	"showdan/models"
	"showdan/services/currency"
	"showdan/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes every repository relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadConfig(configFile)
			logger := utils.GetLogger()

			database.InitDB()
			defer database.CloseDB(context.Background())

			repos := repository.NewMongoRepositories(database.MongoClient, database.Database())
			if err := repos.EnsureIndexes(cmd.Context()); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}
			logger.Info("indexes are up to date", zap.String("database", config.AppConfig.DatabaseName))
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Upsert users and exchange rates from a YAML or JSON file into MongoDB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadConfig(configFile)
			logger := utils.GetLogger()

			database.InitDB()
			defer database.CloseDB(context.Background())

			db := database.Database()
			return applySeed(cmd.Context(), args[0], userRepo.NewMongoUserRepo(db).Upsert, currencyRepo.NewMongoRateRepo(db).Upsert, logger)
		},
	}
}

// seedData is the layout of a seed file.
type seedData struct {
	Users []models.User         `mapstructure:"users"`
	Rates []models.ExchangeRate `mapstructure:"rates"`
}

func loadSeed(path string) (*seedData, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data seedData
	if err := v.Unmarshal(&data); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &data, nil
}

func applySeed(
	ctx context.Context,
	path string,
	putUser func(context.Context, models.User) error,
	putRate func(context.Context, models.ExchangeRate) error,
	logger *zap.Logger,
) error {
	data, err := loadSeed(path)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, u := range data.Users {
		if u.ID == "" {
			return fmt.Errorf("seed user %q has no id", u.Email)
		}
		u.Currency = currency.Normalize(u.Currency)
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		if err := putUser(ctx, u); err != nil {
			return err
		}
	}
	for _, r := range data.Rates {
		r.From, r.To = currency.Normalize(r.From), currency.Normalize(r.To)
		if r.From == "" || r.To == "" || r.Rate <= 0 {
			return fmt.Errorf("seed rate %s->%s is invalid", r.From, r.To)
		}
		r.UpdatedAt = now
		if err := putRate(ctx, r); err != nil {
			return err
		}
	}
	logger.Info("seed applied",
		zap.String("file", path),
		zap.Int("users", len(data.Users)),
		zap.Int("rates", len(data.Rates)))
	return nil
}
