package initializers

import (
	"attendance-backend/config"
	redisstore "attendance-backend/lib/kvstore/redis"
)

func InitRedisConnection() {
	err := redisstore.Connect(config.Conf.Redis.Addr, config.Conf.Redis.Password, config.Conf.Redis.DB)
	if err != nil {
		panic(err.Error())
	}
}
