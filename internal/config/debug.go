package config

import "os"

func IsDebug() bool {
	return os.Getenv("DTOOL_DEBUG") == "1"
}
