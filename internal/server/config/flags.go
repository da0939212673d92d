package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/flagx"
)

var knownFlags = []string{"-a", "-g", "-d", "-m", "-n", "-s", "-t", "-l", "-driver", "-hasher", "-cost"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       REST bind address (e.g., ":8080")
//	-g string       gRPC health bind address (e.g., ":50051")
//	-d string       PostgreSQL DSN
//	-m string       MongoDB URI
//	-n string       MongoDB database name
//	-s string       JWT HMAC secret key
//	-t int          access token validity, minutes
//	-l string       log level
//	-driver string  storage driver: postgres, mongo or memory
//	-hasher string  password hasher: bcrypt or argon2id
//	-cost int       bcrypt cost
//
// Unknown arguments are filtered out with flagx.FilterArgs first, so -c and
// anything else on the command line do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve REST on")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to serve gRPC health on")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "mongo URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "mongo database")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.StorageDriver, "driver", config.StorageDriver, "storage driver")
	fs.StringVar(&config.PasswordHasher, "hasher", config.PasswordHasher, "password hasher")
	fs.IntVar(&config.BcryptCost, "cost", config.BcryptCost, "bcrypt cost")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Sub-minute values from earlier layers survive unless -t is given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
	return nil
}
