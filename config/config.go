package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string
	LogLevel string

	ApiServer   ServerConfigs
	Auth        AuthConfigs
	DynamoDB    DynamoDBConfigs
	Storage     S3Configs
	Redis       RedisConfigs
	UserService UserServiceConfigs
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret     string
	AccessTokenName string
	TokenExpiration time.Duration
}

type DynamoDBConfigs struct {
	Region      string
	Endpoint    string
	AccessKey   string
	SecretKey   string
	SSLDisabled bool

	RiddleTable string
	GraphTable  string
	UserTable   string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
	Bucket         string
}

type RedisConfigs struct {
	Addr string
}

type UserServiceConfigs struct {
	Endpoints []string
}

// Load reads the TOML configuration at path.
func Load(path string) (Configs, error) {
	var configs Configs
	if _, err := toml.DecodeFile(path, &configs); err != nil {
		return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
	}

	return configs, nil
}
