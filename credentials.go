package corral

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// credentialsPath is the rc file location relative to the XDG config home.
const credentialsPath = "corral/credentials.yaml"

// Credentials hold the hub API key and the account's remote inference
// preference. They are loaded once per process and referenced, never owned,
// by each Validator.
type Credentials struct {
	// APIKey is the hub token sent as a bearer token on remote
	// inference calls.
	APIKey string `yaml:"api_key"`

	// UseRemoteInference enables remote inference for validators that
	// did not choose a mode explicitly. nil means unset, which counts
	// as disabled.
	UseRemoteInference *bool `yaml:"use_remote_inference"`
}

// RemoteInferenceEnabled reports whether the account both holds a token and
// has opted into remote inference.
func (c *Credentials) RemoteInferenceEnabled() bool {
	if c == nil || c.APIKey == "" {
		return false
	}
	return c.UseRemoteInference != nil && *c.UseRemoteInference
}

// LoadCredentials reads the credentials rc file from the XDG config home
// (typically ~/.config/corral/credentials.yaml). It returns (nil, nil) when
// the file does not exist: absent credentials are an expected state, handled
// at validator construction, not a load error.
func LoadCredentials() (*Credentials, error) {
	path, err := xdg.SearchConfigFile(credentialsPath)
	if err != nil {
		return nil, nil
	}
	return LoadCredentialsFrom(path)
}

// LoadCredentialsFrom reads credentials from an explicit path. Unlike
// LoadCredentials, a missing file is reported as (nil, nil) but any other
// read or parse failure is an error.
func LoadCredentialsFrom(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("corral: failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("corral: failed to parse credentials: %w", err)
	}
	return &creds, nil
}
