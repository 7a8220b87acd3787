package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-g string   gRPC health bind address, "" disables
//	-d string   SQLite database file
//	-s string   bearer token secret, "" disables auth
//	-l string   log level
//	-t int      shutdown timeout, seconds
//	-m string   metrics route, "" disables
//	-w bool     checkpoint after every mutation
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and flags
// meant for other components do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-l", "-t", "-m", "-w"}, "-w")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "database file")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "bearer token secret")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	fs.StringVar(&config.MetricsPath, "m", config.MetricsPath, "metrics route")
	fs.BoolVar(&config.AutoSave, "w", config.AutoSave, "checkpoint after every mutation")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
