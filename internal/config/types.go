package config

// Config is the top-level dbox configuration.
type Config struct {
	GitHub GitHubConfig `json:"github"`
	Clone  CloneConfig  `json:"clone"`
}

// GitHubConfig holds GitHub API credentials.
type GitHubConfig struct {
	// Token is the API token. The GITHUB_TOKEN environment variable and the
	// gh CLI auth token are consulted when it is empty.
	Token string `json:"token,omitempty"`
}

// CloneConfig controls the external clone command each resolved pull-request
// URL is handed to.
type CloneConfig struct {
	// Command is the executable to run; the pull-request URL is appended as
	// the final argument.
	Command string `json:"command"`
	// Args are extra arguments inserted before the URL.
	Args []string `json:"args,omitempty"`
	// Dir is the working directory clones run in. Defaults to the current
	// directory.
	Dir string `json:"dir,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Clone: CloneConfig{
			Command: "dbox-clone",
		},
	}
}
