package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Redis struct {
		Addr     string `default:"127.0.0.1:6379" env:"REDIS_ADDR"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	Storage struct {
		RequestsKey  string `default:"attendance:requests" env:"STORAGE_REQUESTS_KEY"`
		MirrorPath   string `default:"./data/requests.json" env:"STORAGE_MIRROR_PATH"`
		ProfilesPath string `default:"./profiles.yml" env:"STORAGE_PROFILES_PATH"`
	}
	Directory struct {
		Host string `default:"http://localhost:8000" env:"DIRECTORY_HOST"`
	}
	Auth struct {
		JWTSecret             string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec        int    `default:"3600" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int    `default:"86400" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User              string `default:"" env:"SMTP_USER"`
		Password          string `default:"" env:"SMTP_PASSWORD"`
		Host              string `default:"" env:"SMTP_HOST"`
		Port              string `default:"" env:"SMTP_PORT"`
		TLSEnabled        *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		EmailNotifySender string `default:"" env:"EMAIL_NOTIFY_SENDER"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
