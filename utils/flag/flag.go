/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	ServiceName string
)

func init() {
	flag.StringVar(&ServiceName, "service", APIServer, "name of the running service, used in log fields")
	flag.Parse()
}
