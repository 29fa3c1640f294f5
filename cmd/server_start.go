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
package cmd

import (
	"github.com/spf13/cobra"
	v "github.com/spf13/viper"

	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/server"
	"github.com/bbva/hashtree/util"
)

var serverStart *cobra.Command = &cobra.Command{
	Use:   "start",
	Short: "Starts the hashtree server",
	RunE:  runServerStart,
}

func init() {
	serverCmd.AddCommand(serverStart)
}

func runServerStart(cmd *cobra.Command, args []string) error {
	conf := serverCtx.Value(k("server.config")).(*server.Config)
	conf.Log = v.GetString("log")

	markStringRequired(conf.HTTPAddr, "http-addr")
	if err := urlParseNoSchemaRequired(conf.HTTPAddr); err != nil {
		return err
	}
	if !conf.DisableMetrics {
		if err := urlParseNoSchemaRequired(conf.MetricsAddr); err != nil {
			return err
		}
	}

	log.SetLogger("server", conf.Log)
	log.Debugf("Server config: %+v", *conf)

	srv, err := server.NewServer(conf)
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	util.AwaitTermSignal(srv.Stop)

	log.Debug("Stopping server, about to exit...")
	return nil
}
