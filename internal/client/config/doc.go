// Package config loads runtime configuration for the tripkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-k string   snapshot store: memory, file or s3
//	-d string   directory of the file snapshot store
//	-r string   snapshot record id
//	-w bool     persist after every mutation
//	-x bool     encrypt the snapshot (prompts for a passphrase)
//	-l string   log level
//	-s string   secret used by the token command
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 endpoint (MinIO and friends)
//
// # JSON schema
//
//	{
//	  "snapshot_store": "s3",
//	  "snapshot_dir": "data",
//	  "snapshot_key": "travel_db",
//	  "auto_save": true,
//	  "encrypt": false,
//	  "log_level": "warn",
//	  "token_secret": "",
//	  "token_validity": "24h",
//	  "s3": {"access_key": "", "secret_key": "", "bucket": "", "region": "", "endpoint": "", "prefix": ""}
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
