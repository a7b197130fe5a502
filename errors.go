package corral

import "fmt"

// ConfigError indicates a validator could not be constructed: the rail alias
// is not registered, the constructor rejected its arguments, or the on-fail
// policy is unknown. Configuration errors are fatal at construction time and
// never retried.
type ConfigError struct {
	Alias string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Alias == "" {
		return fmt.Sprintf("corral: invalid validator configuration: %v", e.Err)
	}
	return fmt.Sprintf("corral: invalid configuration for validator %q: %v", e.Alias, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PermissionError indicates a validator requires authenticated remote
// inference but no credentials are available and no explicit execution mode
// was chosen. Fatal at construction time.
type PermissionError struct {
	Alias string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf(
		"corral: no credentials found for validator %q; provide credentials or "+
			"select local inference explicitly", e.Alias)
}

// HubStatusError is returned by HubClient when the remote inference endpoint
// replies with a non-success status. Validator.Inference absorbs it (firing
// a RemoteErrorEvent) and degrades to the partial response body.
type HubStatusError struct {
	StatusCode int
	Message    string
}

func (e *HubStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("corral: hub inference returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("corral: hub inference returned status %d: %s", e.StatusCode, e.Message)
}
