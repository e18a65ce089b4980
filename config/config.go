package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port        string `mapstructure:"port"`
		FrontendURL string `mapstructure:"frontend_url"`
		AdminRoleID string `mapstructure:"admin_role_id"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey              string `mapstructure:"secret_key"`
		AuthTokenExpiresIn     string `mapstructure:"auth_token_expires_in"`
		RefreshTokenExpiresIn  string `mapstructure:"refresh_token_expires_in"`
		RecoveryTokenExpiresIn string `mapstructure:"recovery_token_expires_in"`
		VerifyTokenExpiresIn   string `mapstructure:"verify_token_expires_in"`
	} `mapstructure:"jwt"`
	Bcrypt struct {
		Cost int `mapstructure:"cost"`
	} `mapstructure:"bcrypt"`
	Mail struct {
		Region    string `mapstructure:"region"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"mail"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
