package db

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskboard/internal/config"
)

const (
	defaultParams  = "parseTime=true&multiStatements=true"
	connectTimeout = 10 * time.Second
)

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	dsn, err := buildDSN(conf)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to mysql at %s:%s: %w", conf.DbHost, conf.DbPort, err)
	}

	db.SetMaxOpenConns(conf.DbMaxOpenConns)
	db.SetMaxIdleConns(conf.DbMaxOpenConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// buildDSN starts from MYSQL_PARAMS and fills in the connection fields, so
// credentials never need escaping. parseTime is always on: rows are scanned
// into time.Time.
func buildDSN(conf *config.Config) (string, error) {
	params := conf.DbParams
	if params == "" {
		params = defaultParams
	}

	dsnConfig, err := mysql.ParseDSN("/?" + params)
	if err != nil {
		return "", fmt.Errorf("parse MYSQL_PARAMS: %w", err)
	}
	dsnConfig.User = conf.DbUser
	dsnConfig.Passwd = conf.DbPassword
	dsnConfig.Net = "tcp"
	dsnConfig.Addr = net.JoinHostPort(conf.DbHost, conf.DbPort)
	dsnConfig.DBName = conf.DbName
	dsnConfig.ParseTime = true

	return dsnConfig.FormatDSN(), nil
}
