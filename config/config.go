package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Port   string `envconfig:"PORT" default:"5001"`
	AppURL string `envconfig:"APP_URL" default:"http://localhost:5001"`
	Env    string `envconfig:"ENV" default:"development"`

	MongoURI  string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDB   string `envconfig:"MONGODB_DATABASE" default:"realestate"`
	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
