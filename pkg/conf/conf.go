package conf

import (
	"log"

	"github.com/spf13/viper"
)

// Stats whose team-level value is the average over contributing players
// rather than the sum. Everything else is a counting stat.
var defaultAveragedStats = []string{
	"ANY/A", "AY/A", "Cmp%", "Int%", "Kic_KOAvg", "Kic_Y/Rt", "Lng", "NY/A",
	"Pts/G", "Pun_Lng", "Pun_Y/P", "Pun_Y/R", "Rus_Y/A", "Sco_Lng", "Sk%",
	"TD%", "Y/A", "Y/C", "Y/G", "Kic_Lng", "Rate",
}

func Config(path string) *viper.Viper {
	viper.SetConfigName("conf") // Name without extension
	viper.SetConfigType("yaml") // File type
	viper.AddConfigPath(path)   // Look for config in the current directory

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.cors_origin", "http://localhost:5173")
	viper.SetDefault("db.dsn", "host=localhost user=postgres password=postgres dbname=db port=5432 sslmode=disable")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("auth.secret", "your-secret-key")

	// Cap of 150 (millions) is the real cap scaled to the number of
	// players a session drafts.
	viper.SetDefault("gm.salary_cap", 150.0)
	viper.SetDefault("gm.games_in_season", 16)
	viper.SetDefault("gm.observed_games", 11)
	viper.SetDefault("gm.averaged_stats", defaultAveragedStats)

	// Read configuration file
	err := viper.ReadInConfig()
	if err != nil {
		log.Printf("No config file found, using defaults: %v", err)
	}

	return viper.GetViper()
}
