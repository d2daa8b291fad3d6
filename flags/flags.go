/*
 * yubo@yubo.org
 * 2016-01-26
 */
package flags

import (
	goflag "flag"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

// AddGlobalFlags binds the klog flags (-v, --logtostderr, ...) into fs.
func AddGlobalFlags(fs *pflag.FlagSet) {
	local := goflag.NewFlagSet(os.Args[0], goflag.ExitOnError)
	klog.InitFlags(local)

	local.VisitAll(func(f *goflag.Flag) {
		pf := pflag.PFlagFromGoFlag(f)
		if fs.Lookup(pf.Name) == nil {
			fs.AddFlag(pf)
		}
	})
}

// Env returns the value of the environment variable key, or def when unset.
func Env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
