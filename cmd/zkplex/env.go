package main

import (
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindEnv wires fs's flags into a fresh Viper instance with a prefixed,
// dash-free environment-variable scheme, matching the sequencer CLI's
// convention (DAVINCI_WEB3_PRIVKEY there, ZKPLEX_MAX_BITS here).
func bindEnv(fs *flag.FlagSet, prefix string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(fs)
	return v
}
