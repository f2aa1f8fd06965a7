package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variables during credential
// loading (e.g. TARGET_API_CLIENT_ID -> client_id).
const envPrefix = "TARGET_API_"

// Credentials identify an application to the myTarget OAuth2 server.
// They are supplied at construction and never mutated by the SDK.
type Credentials struct {
	ClientID     string `koanf:"client_id" validate:"required"`
	ClientSecret string `koanf:"client_secret" validate:"required"`
}

// Validate reports whether both credential fields are present.
func (c Credentials) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("auth: invalid credentials: %w", err)
	}
	return nil
}

// CredentialsFromEnv loads credentials from TARGET_API_CLIENT_ID and
// TARGET_API_CLIENT_SECRET environment variables.
func CredentialsFromEnv() (Credentials, error) {
	return credentialsFromEnviron(os.Environ)
}

func credentialsFromEnviron(environ func() []string) (Credentials, error) {
	k := koanf.New(".")

	provider := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
		},
		EnvironFunc: environ,
	})
	if err := k.Load(provider, nil); err != nil {
		return Credentials{}, fmt.Errorf("auth: loading environment variables: %w", err)
	}

	var creds Credentials
	if err := k.UnmarshalWithConf("", &creds, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Credentials{}, fmt.Errorf("auth: unmarshaling credentials: %w", err)
	}

	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}
