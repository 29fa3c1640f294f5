/*
   Copyright 2018-2019 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/
// Package cmd implements the hashtree command line commands.
package cmd

import (
	"context"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"

	"github.com/bbva/hashtree/log"
)

// Context key type to be used when adding values to context
// as per documentation:
//	https://golang.org/pkg/context/#example_WithValue
type k string

const defaultConfigFile = "~/.hashtree/config.yml"

var Root *cobra.Command = &cobra.Command{
	Use:   "hashtree",
	Short: "Append-only hash tree builder",
	Long: `hashtree keeps an append-only sequence of values and the binary hash tree
built over it. Adjacent nodes are hashed in pairs level by level, and a node
left without a sibling is promoted unchanged, until a single root remains.`,
	// SilenceUsage is set to true -> https://github.com/spf13/cobra/issues/340
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

var Ctx context.Context = context.Background()

func init() {
	f := Root.PersistentFlags()
	f.StringP("config", "c", defaultConfigFile, "Path to the YAML config file")
	f.StringP("log", "l", "info", "Set log level to info, error, debug, trace or silent")

	// Lookups
	_ = v.BindPFlag("config", f.Lookup("config"))
	_ = v.BindPFlag("log", f.Lookup("log"))

	v.SetEnvPrefix("hashtree")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// initConfig reads the config file, if any, sets up the default logger
// and fills the flags not given in the command line from the environment
// or the config file.
func initConfig(cmd *cobra.Command, args []string) error {
	path, err := homedir.Expand(v.GetString("config"))
	if err != nil {
		return errors.Wrap(err, "expanding config file path")
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", path)
		}
	} else if cmd.Flags().Changed("config") {
		return errors.Wrapf(err, "config file %s", path)
	}

	log.SetLogger("hashtree", v.GetString("log"))
	log.Debugf("Using config file %s", v.ConfigFileUsed())

	return applyConfig(cmd.Flags())
}

// applyConfig sets every flag not given in the command line from the
// environment (HASHTREE_<FLAG_NAME>) or the config file.
func applyConfig(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "config" || f.Name == "log" || f.Name == "help" {
			return
		}
		if !v.IsSet(f.Name) {
			return
		}
		if e := flags.Set(f.Name, v.GetString(f.Name)); e != nil {
			err = errors.Wrapf(e, "invalid value for %s", f.Name)
		}
	})
	return err
}
