package config

type Config interface {
	EnvConfig
	AuthConfig
	SessionConfig
	PolicyConfig
	StoreConfig
}

type mainConfig struct {
	EnvVars
	Auth
	Session
	Policy
	Store
}

func New() Config {
	return mainConfig{}
}
