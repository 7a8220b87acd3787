package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tripkeeper/internal/flagx"
)

var allowedFlags = []string{"-k", "-d", "-r", "-w", "-x", "-l", "-s", "-u", "-p", "-b", "-g", "-e"}

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered first so -c/-config does not trip the parser. An unknown -k value
// panics like any other parse error.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], allowedFlags, "-w", "-x")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.SnapshotStore, "k", cfg.SnapshotStore, "snapshot store: memory, file or s3")
	fs.StringVar(&cfg.SnapshotDir, "d", cfg.SnapshotDir, "snapshot directory")
	fs.StringVar(&cfg.SnapshotKey, "r", cfg.SnapshotKey, "snapshot record id")
	fs.BoolVar(&cfg.AutoSave, "w", cfg.AutoSave, "persist after every mutation")
	fs.BoolVar(&cfg.Encrypt, "x", cfg.Encrypt, "encrypt the snapshot")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.TokenSecret, "s", cfg.TokenSecret, "token secret")
	fs.StringVar(&cfg.S3.AccessKey, "u", cfg.S3.AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3.SecretKey, "p", cfg.S3.SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3.Bucket, "b", cfg.S3.Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3.Region, "g", cfg.S3.Region, "S3 region")
	fs.StringVar(&cfg.S3.Endpoint, "e", cfg.S3.Endpoint, "S3 endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	switch cfg.SnapshotStore {
	case StoreMemory, StoreFile, StoreS3:
	default:
		panic(fmt.Sprintf("unknown snapshot store %q", cfg.SnapshotStore))
	}
}
