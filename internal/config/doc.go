// Package config manages user-level settings stored at ~/.tsforge/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default package scope applied when no --scope flag is given.
package config
