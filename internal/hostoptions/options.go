package hostoptions

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// HostingModel selects how the shim hosts the application process.
type HostingModel int

const (
	// OutOfProcess launches the application separately and proxies to it.
	OutOfProcess HostingModel = iota
	// InProcess loads the application into the server worker process.
	InProcess
)

const (
	modelOutOfProcess = "outofprocess"
	modelInProcess    = "inprocess"

	handlerVersionKey = "handlerVersion"

	envDetailedErrors = "DETAILEDERRORS"
	envEnvironment    = "ENVIRONMENT"
	envDevelopment    = "Development"
)

func (m HostingModel) String() string {
	if m == InProcess {
		return modelInProcess
	}
	return modelOutOfProcess
}

// Options carries the hosting settings for the process shim.
type Options struct {
	ProcessPath             string            `mapstructure:"processPath"`
	Arguments               string            `mapstructure:"arguments"`
	HostingModel            HostingModel      `mapstructure:"hostingModel"`
	StdoutLogEnabled        bool              `mapstructure:"stdoutLogEnabled"`
	StdoutLogFile           string            `mapstructure:"stdoutLogFile"`
	DisableStartupErrorPage bool              `mapstructure:"disableStartupErrorPage"`
	HandlerSettings         map[string]string `mapstructure:"handlerSettings"`
	EnvironmentVariables    map[string]string `mapstructure:"environmentVariables"`

	// Derived, not read from the configuration source directly.
	HandlerVersion     string `mapstructure:"-"`
	ShowDetailedErrors bool   `mapstructure:"-"`
}

// requiredKeys must be present in the configuration source. Booleans cannot
// distinguish false from absent after decoding, so presence is checked first.
var requiredKeys = []string{
	"processPath",
	"stdoutLogEnabled",
	"stdoutLogFile",
	"disableStartupErrorPage",
}

// Load extracts hosting options from v. lookupEnv resolves process
// environment variables; pass os.Getenv in production and a map lookup in
// tests.
func Load(v *viper.Viper, lookupEnv func(string) string) (*Options, error) {
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("hosting options: %s is required", key)
		}
	}

	var opts Options
	if err := v.Unmarshal(&opts, viper.DecodeHook(hostingModelHook())); err != nil {
		return nil, fmt.Errorf("decoding hosting options: %w", err)
	}
	if opts.ProcessPath == "" {
		return nil, fmt.Errorf("hosting options: processPath is required")
	}

	// Handler settings only apply when the shim proxies to a separate process.
	if opts.HostingModel == OutOfProcess {
		opts.HandlerVersion = mapLookup(opts.HandlerSettings, handlerVersionKey)
	}
	opts.ShowDetailedErrors = detectDetailedErrors(opts.EnvironmentVariables, lookupEnv)

	return &opts, nil
}

// hostingModelHook decodes the hosting model string into its enum, rejecting
// unknown values at decode time.
func hostingModelHook() mapstructure.DecodeHookFunc {
	modelType := reflect.TypeOf(HostingModel(0))
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != modelType {
			return data, nil
		}
		return ParseHostingModel(data.(string))
	}
}

// ParseHostingModel maps a configured hosting model string to its enum. An
// empty value defaults to OutOfProcess; anything else unknown is an error.
func ParseHostingModel(s string) (HostingModel, error) {
	switch {
	case s == "" || strings.EqualFold(s, modelOutOfProcess):
		return OutOfProcess, nil
	case strings.EqualFold(s, modelInProcess):
		return InProcess, nil
	default:
		return OutOfProcess, fmt.Errorf("unknown hosting model %q: specify either %q or %q", s, modelInProcess, modelOutOfProcess)
	}
}

// detectDetailedErrors enables detailed errors when either the process
// environment or the config-supplied environment map asks for them, directly
// or by declaring a development environment.
func detectDetailedErrors(configEnv map[string]string, lookupEnv func(string) string) bool {
	if lookupEnv == nil {
		lookupEnv = func(string) string { return "" }
	}
	enabled := truthy(lookupEnv(envDetailedErrors)) || isDevelopment(lookupEnv(envEnvironment))
	return enabled || truthy(mapLookup(configEnv, envDetailedErrors)) || isDevelopment(mapLookup(configEnv, envEnvironment))
}

// mapLookup is a case-insensitive map lookup; viper lowercases keys read
// from configuration files.
func mapLookup(m map[string]string, key string) string {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func truthy(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}

func isDevelopment(s string) bool {
	return strings.EqualFold(s, envDevelopment)
}
