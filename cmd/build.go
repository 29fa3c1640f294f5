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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bbva/hashtree/merkle"
	"github.com/bbva/hashtree/render"
	"github.com/bbva/hashtree/util"
)

type buildConfig struct {
	File   string `desc:"Read values from a file, one per line"`
	Format string `desc:"Output format: text, levels, indent, json or msgpack"`
}

var buildCmd *cobra.Command = &cobra.Command{
	Use:   "build [values...]",
	Short: "Builds the hash tree of the given values",
	Long: `Builds the hash tree of the values given as arguments, followed by the
non blank lines of --file, and prints its root and a rendering of the tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := buildCtx.Value(k("build.config")).(*buildConfig)
		bconf := buildCtx.Value(k("builder.config")).(*builderConfig)
		return runBuild(cmd.OutOrStdout(), conf, bconf, args)
	},
}

var buildCtx context.Context

func init() {
	buildCtx = configBuild()
	Root.AddCommand(buildCmd)
}

func configBuild() context.Context {

	conf := &buildConfig{Format: render.FormatText}
	bconf := defaultBuilderConfig()

	if err := gpflag.ParseTo(conf, buildCmd.Flags()); err != nil {
		panic(fmt.Sprintf("Unable to parse build config: %v", err))
	}
	if err := gpflag.ParseTo(bconf, buildCmd.Flags()); err != nil {
		panic(fmt.Sprintf("Unable to parse builder config: %v", err))
	}

	ctx := context.WithValue(Ctx, k("build.config"), conf)
	return context.WithValue(ctx, k("builder.config"), bconf)
}

func runBuild(out io.Writer, conf *buildConfig, bconf *builderConfig, args []string) error {
	if err := formatParse(conf.Format); err != nil {
		return err
	}

	builder, err := merkle.NewBuilder(bconf.options())
	if err != nil {
		return err
	}

	for _, arg := range args {
		builder.Append([]byte(arg))
	}

	if conf.File != "" {
		f, err := os.Open(conf.File)
		if err != nil {
			return errors.Wrap(err, "opening values file")
		}
		defer f.Close()
		err = util.ScanValues(f, func(value []byte) error {
			builder.Append(value)
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "reading values from %s", conf.File)
		}
	}

	tree, err := builder.BuildTree()
	if err != nil {
		return err
	}

	return printTree(out, tree, conf.Format)
}

// printTree writes the rendering of a tree, preceded by its root and
// size unless the format is meant for machines.
func printTree(out io.Writer, tree merkle.Tree, format string) error {
	if format != render.FormatJSON && format != render.FormatMsgpack {
		root := tree.Hex()
		if tree.Empty() {
			root = "-"
		}
		if _, err := fmt.Fprintf(out, "root: %s\nleaves: %d\n", root, tree.Size()); err != nil {
			return err
		}
	}
	return render.Write(out, tree, format)
}
