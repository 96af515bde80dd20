/*
Copyright 2026 The artrel Authors.

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
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

const (
	rootCommand     = "artrel"
	rootDescription = "ART release payload management tool"

	rootDescriptionLong = `artrel turns a resolved assembly definition into the inputs that
produce OpenShift release payloads: SRC=DEST mirroring definitions for
'oc image mirror' and imagestream manifests for the release
controllers. It runs the consistency checks required before payload
content is published.`
)

type rootOptions struct {
	// Debug pipes stderr of invoked 'oc' commands through to stderr of
	// this process.
	Debug bool
}

func (o *rootOptions) AddFlags(fs *flag.FlagSet) {
	fs.BoolVar(&o.Debug, "debug", false, "If true, stderr of invoked 'oc' commands is piped to stderr of this process.")
}

func (o *rootOptions) print() {
	log.Printf("Root options:")
	log.Printf("  Debug: %t", o.Debug)
}

func Execute() {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:   rootCommand,
		Short: rootDescription,
		Long:  rootDescriptionLong,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			o.print()
		},
	}
	o.AddFlags(root.PersistentFlags())
	root.AddCommand(genPayloadCmd(o))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
