package config

const (
	FlagConfigPath       = "config-path"
	FlagConfigPrivateKey = "private-key"
	FlagConfigDbPass     = "db-pass"

	DBDialectMysql   = "mysql"
	DBDialectSqlite3 = "sqlite3"

	KeyTypeLocalPrivateKey = "local_private_key"
	KeyTypeKeystore        = "keystore"
)
