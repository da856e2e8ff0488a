package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort          string `mapstructure:"SERVER_PORT"`
	RedisUrl            string `mapstructure:"REDIS_URL"`
	MongoUri            string `mapstructure:"MONGO_URI"`
	ExplorerUrl         string `mapstructure:"EXPLORER_URL"`
	ExplorerSpeeds      string `mapstructure:"EXPLORER_SPEEDS"`
	ExplorerCacheTTLSec int    `mapstructure:"EXPLORER_CACHE_TTL_SEC"`
	MaxPlies            int    `mapstructure:"MAX_PLIES"`
	IsLocalCors         bool   `mapstructure:"LOCAL_CORS"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
