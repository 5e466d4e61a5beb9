package config

import "fmt"

const (
	msgBindEnvFailedFmt   = "failed to bind environment variable %s"
	msgConfigFileNotFound = "config file not found, using environment variables and defaults"
	msgUsingConfigFile    = "using config file"
)

type messageBuilders struct {
	bindEnvFailed      func(string) string
	configFileNotFound func() string
	usingConfigFile    func() string
}

func newMessageBuilders() messageBuilders {
	return messageBuilders{
		bindEnvFailed: func(key string) string {
			return fmt.Sprintf(msgBindEnvFailedFmt, key)
		},
		configFileNotFound: func() string {
			return msgConfigFileNotFound
		},
		usingConfigFile: func() string {
			return msgUsingConfigFile
		},
	}
}

var messages = newMessageBuilders()
