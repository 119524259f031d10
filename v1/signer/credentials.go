package signer

import (
	"errors"
	"fmt"
	"os"
)

// Environment variables holding the account credentials.
const (
	EnvAccessKey = "VIKINGDB_AK"
	EnvSecretKey = "VIKINGDB_SK"
)

// ErrMissingCredentials is returned when the access key or secret key is
// absent. It is a fatal configuration error: no signing is attempted and
// callers should abort startup.
var ErrMissingCredentials = errors.New("signer: missing access key or secret key")

// Credentials is an access-key identifier and its secret. It is loaded
// once at process start and lives for the process; it is never persisted
// or logged by this module.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// NewCredentialsFromEnv reads credentials from VIKINGDB_AK / VIKINGDB_SK.
func NewCredentialsFromEnv() (Credentials, error) {
	c := Credentials{
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
	}
	if err := c.Validate(); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

// Validate checks that both parts of the credential are present.
func (c Credentials) Validate() error {
	if c.AccessKey == "" {
		return fmt.Errorf("%w: %s is empty", ErrMissingCredentials, EnvAccessKey)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("%w: %s is empty", ErrMissingCredentials, EnvSecretKey)
	}
	return nil
}
