// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

const (
	HTTPHostKey        = "http-host"
	HTTPPortKey        = "http-port"
	DataDirKey         = "data-dir"
	GenesisFileKey     = "genesis-file"
	ConfigFileKey      = "config-file"
	AllowedOriginsKey  = "http-allowed-origins"
	ShutdownTimeoutKey = "http-shutdown-timeout"
)

var ErrMissingDataDir = errors.New("data directory is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server")
	flags.Uint16(HTTPPortKey, 9650, "Port of the HTTP server")
	flags.String(DataDirKey, "", "Directory of the chain database (required)")
	flags.String(GenesisFileKey, "", "JSON genesis, applied the first time the database is opened")
	flags.String(ConfigFileKey, "", "JSON chain parameters over the defaults; must name the platformFeeAccount")
	flags.StringSlice(AllowedOriginsKey, []string{"*"}, "Origins allowed to make CORS requests")
	flags.Duration(ShutdownTimeoutKey, 10*time.Second, "Maximum time to wait for in-flight requests on shutdown")
}

type Config struct {
	HTTPHost        string
	HTTPPort        uint16
	DataDir         string
	GenesisFile     string
	ConfigFile      string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	httpHost, err := flags.GetString(HTTPHostKey)
	if err != nil {
		return nil, err
	}

	httpPort, err := flags.GetUint16(HTTPPortKey)
	if err != nil {
		return nil, err
	}

	dataDir, err := flags.GetString(DataDirKey)
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		return nil, ErrMissingDataDir
	}

	genesisFile, err := flags.GetString(GenesisFileKey)
	if err != nil {
		return nil, err
	}

	configFile, err := flags.GetString(ConfigFileKey)
	if err != nil {
		return nil, err
	}

	allowedOrigins, err := flags.GetStringSlice(AllowedOriginsKey)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := flags.GetDuration(ShutdownTimeoutKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPHost:        httpHost,
		HTTPPort:        httpPort,
		DataDir:         dataDir,
		GenesisFile:     genesisFile,
		ConfigFile:      configFile,
		AllowedOrigins:  allowedOrigins,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}
