// Package config manages user-level settings stored at ~/.oasref/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default class name recorded on added references and the download
// timeout.
package config
