package pg

import (
	"database/sql"
	"fmt"
)

// Config describes one side of the ledger's read/write database pair. The
// config layer builds one from the POSTGRES_READ_* vars and one from the
// POSTGRES_WRITE_* vars.
type Config struct {
	User     string `env:"USER"`
	Host     string `env:"HOST"`
	Port     string `env:"PORT"`
	Password string `env:"PASSWORD"`
	Database string `env:"DBNAME"`
}

// newSqlConnection opens the plain database/sql handle the goose migrator
// runs against. The API itself talks to postgres through gorm, not this.
func newSqlConnection(config Config) (*sql.DB, error) {
	return sql.Open("postgres", fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", config.Host, config.User, config.Password, config.Database, config.Port))
}
