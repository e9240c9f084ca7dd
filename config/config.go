package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	ChainConfig   ChainConfig   `json:"chain_config"`
	LogConfig     LogConfig     `json:"log_config"`
	AlertConfig   AlertConfig   `json:"alert_config"`
	DBConfig      DBConfig      `json:"db_config"`
	MetricsConfig MetricsConfig `json:"metrics_config"`
}

type ChainConfig struct {
	RPCAddrs        []string `json:"rpc_addrs"`
	ContractAddress string   `json:"contract_address"`
	ChainId         int64    `json:"chain_id"`
	GasLimit        uint64   `json:"gas_limit"`
	KeyType         string   `json:"key_type"`
	PrivateKey      string   `json:"private_key"`
	KeystoreDir     string   `json:"keystore_dir"`
	Passphrase      string   `json:"passphrase"`
	RefreshInterval uint64   `json:"refresh_interval"` // seconds, 0 disables the background refresh loop
}

func (cfg *ChainConfig) Validate() {
	if len(cfg.RPCAddrs) == 0 {
		panic("rpc_addrs should not be empty")
	}
	if cfg.ContractAddress == "" {
		panic("contract_address should not be empty")
	}
	if cfg.ChainId == 0 {
		panic("chain_id should not be zero")
	}
	if cfg.KeyType != KeyTypeLocalPrivateKey && cfg.KeyType != KeyTypeKeystore {
		panic(fmt.Sprintf("only %s and %s supported", KeyTypeLocalPrivateKey, KeyTypeKeystore))
	}
	if cfg.KeyType == KeyTypeKeystore && cfg.KeystoreDir == "" {
		panic("keystore_dir should not be empty if key_type is keystore")
	}
}

type LogConfig struct {
	Level                        string `json:"level"`
	Filename                     string `json:"filename"`
	MaxFileSizeInMB              int    `json:"max_file_size_in_mb"`
	MaxBackupsOfLogFiles         int    `json:"max_backups_of_log_files"`
	MaxAgeToRetainLogFilesInDays int    `json:"max_age_to_retain_log_files_in_days"`
	UseConsoleLogger             bool   `json:"use_console_logger"`
	UseFileLogger                bool   `json:"use_file_logger"`
	Compress                     bool   `json:"compress"`
}

func (cfg *LogConfig) Validate() {
	if cfg.UseFileLogger {
		if cfg.Filename == "" {
			panic("filename should not be empty if use file logger")
		}
		if cfg.MaxFileSizeInMB <= 0 {
			panic("max_file_size_in_mb should be larger than 0 if use file logger")
		}
		if cfg.MaxBackupsOfLogFiles <= 0 {
			panic("max_backups_off_log_files should be larger than 0 if use file logger")
		}
	}
}

type DBConfig struct {
	Dialect      string `json:"dialect"`
	DBPath       string `json:"db_path"`
	Password     string `json:"password"`
	Username     string `json:"username"`
	MaxIdleConns int    `json:"max_idle_conns"`
	MaxOpenConns int    `json:"max_open_conns"`
	DebugMode    bool   `json:"debug_mode"`
}

func (cfg *DBConfig) Validate() {
	if cfg.Dialect != DBDialectMysql && cfg.Dialect != DBDialectSqlite3 {
		panic(fmt.Sprintf("only %s and %s supported", DBDialectMysql, DBDialectSqlite3))
	}
	if cfg.DBPath == "" {
		panic("db config is not correct")
	}
	if cfg.Dialect == DBDialectMysql && cfg.Username == "" {
		panic("db username should not be empty for mysql")
	}
}

type MetricsConfig struct {
	Port uint16 `json:"port"`
}

type AlertConfig struct {
	Identity       string `json:"identity"`
	TelegramBotId  string `json:"telegram_bot_id"`
	TelegramChatId string `json:"telegram_chat_id"`
}

func (cfg *Config) Validate() {
	cfg.ChainConfig.Validate()
	cfg.LogConfig.Validate()
	cfg.DBConfig.Validate()
}

func ParseConfigFromJson(content string) *Config {
	var config Config
	if err := json.Unmarshal([]byte(content), &config); err != nil {
		panic(err)
	}
	return &config
}

func ParseConfigFromFile(filePath string) *Config {
	bz, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}

	var config Config
	if err := json.Unmarshal(bz, &config); err != nil {
		panic(err)
	}

	config.Validate()

	return &config
}
