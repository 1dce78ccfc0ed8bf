package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

var serverFlags = []string{
	"-a", "-grpc", "-b", "-l", "-d", "-n", "-s", "-t", "-log",
	"-s3-user", "-s3-password", "-s3-bucket", "-s3-region", "-s3-endpoint",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            HTTP bind address (e.g., ":8080")
//	-grpc string         admin gRPC bind address (e.g., ":50051")
//	-b string            storage backend: local, remote or memory
//	-l string            SQLite DSN for the local backend
//	-d string            PostgreSQL DSN for the remote backend
//	-n string            key namespace prefix
//	-s string            JWT HMAC secret key
//	-t int               admin token validity, minutes (only applied when set)
//	-log string          log level
//	-s3-user string      S3 root user
//	-s3-password string  S3 root password
//	-s3-bucket string    S3 bucket for backups
//	-s3-region string    S3 region
//	-s3-endpoint string  S3 base endpoint
//
// os.Args is filtered first so that -c/-config (handled by parseJson) and
// test runner flags do not trip the parser.
func parseFlags(config *Config) {
	args := filterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port of the public HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "grpc", config.EndpointAddrGRPC, "address and port of the admin gRPC API")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (local, remote, memory)")
	fs.StringVar(&config.LocalDSN, "l", config.LocalDSN, "local SQLite DSN")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.KeyPrefix, "n", config.KeyPrefix, "key namespace prefix")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", 0, "admin token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 backup bucket")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AdminTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
}

// filterArgs keeps only the allowed flags (and their values) from args.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      -config=conf.json
//
// A following argument is taken as the value unless it starts with '-'.
func filterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// configFileFlag returns the value of -c or -config from args, or "" when
// neither is present. The last occurrence wins.
func configFileFlag(args []string) string {
	var path string
	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(filterArgs(args, []string{"-c", "-config"}))
	return path
}
