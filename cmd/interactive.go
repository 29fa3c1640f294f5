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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/octago/sflags/gen/gpflag"
	"github.com/spf13/cobra"

	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/merkle"
	"github.com/bbva/hashtree/render"
	"github.com/bbva/hashtree/util"
)

type interactiveConfig struct {
	Format string `desc:"Output format: text, levels or indent"`
}

var interactiveCmd *cobra.Command = &cobra.Command{
	Use:   "interactive",
	Short: "Adds the lines read from the standard input to a hash tree",
	Long: `Reads values from the standard input, one per line, and prints the new
root and the tree after adding each one. Blank lines are ignored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := interactiveCtx.Value(k("interactive.config")).(*interactiveConfig)
		bconf := interactiveCtx.Value(k("builder.config")).(*builderConfig)
		return runInteractive(os.Stdin, cmd.OutOrStdout(), conf, bconf)
	},
}

var interactiveCtx context.Context

func init() {
	interactiveCtx = configInteractive()
	Root.AddCommand(interactiveCmd)
}

func configInteractive() context.Context {

	conf := &interactiveConfig{Format: render.FormatText}
	bconf := defaultBuilderConfig()

	if err := gpflag.ParseTo(conf, interactiveCmd.Flags()); err != nil {
		panic(fmt.Sprintf("Unable to parse interactive config: %v", err))
	}
	if err := gpflag.ParseTo(bconf, interactiveCmd.Flags()); err != nil {
		panic(fmt.Sprintf("Unable to parse builder config: %v", err))
	}

	ctx := context.WithValue(Ctx, k("interactive.config"), conf)
	return context.WithValue(ctx, k("builder.config"), bconf)
}

func runInteractive(in io.Reader, out io.Writer, conf *interactiveConfig, bconf *builderConfig) error {
	if err := formatParse(conf.Format); err != nil {
		return err
	}

	builder, err := merkle.NewBuilder(bconf.options())
	if err != nil {
		return err
	}

	return util.ScanValues(in, func(value []byte) error {
		tree, err := builder.Add(value)
		if err != nil {
			// the value stays appended, the next build includes it
			log.Errorf("Unable to build tree: %v", err)
			return nil
		}
		if err := printTree(out, tree, conf.Format); err != nil {
			return err
		}
		_, err = fmt.Fprintln(out)
		return err
	})
}
