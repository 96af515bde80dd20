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

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/openshift-eng/artrel/pkg/assembly"
	"github.com/openshift-eng/artrel/pkg/payload"
)

const (
	genPayloadCommand         = "gen-payload"
	genPayloadDescription     = "Generate input files for release mirroring"
	genPayloadLongDescription = `The gen-payload command generates two sets of input files for 'oc'
commands to mirror content and update image streams. Files are
generated for each architecture in the assembly state.

One set of files are SRC=DEST mirroring definitions for 'oc image
mirror'. They define what source images will be synced to which
destination repos.

The other set of files are YAML image stream manifests for 'oc apply'.
When applied to an openshift cluster, the release controller notices
the update and begins generating a new payload with the images tagged
in the image stream.

You may provide the namespace and base name for the image streams, or
defaults will be used. The generated files append the -arch and -priv
suffixes to the given name and namespace as needed.

The ORGANIZATION and REPOSITORY options are combined into
ORGANIZATION/REPOSITORY when preparing for mirroring.
`
)

var (
	genPayloadExample = fmt.Sprintf(`
To generate payload files for a 4.9 stream assembly:

	%s %s --assembly-state=state.yaml --is-name=4.9-art-latest`, rootCommand, genPayloadCommand)
)

type genPayloadOptions struct {
	// AssemblyState is the path to the resolved assembly state file written
	// by the build inspection tooling.
	AssemblyState string

	// ISName is the ImageStream .metadata.name value, e.g. "4.9-art-latest".
	ISName string

	// ISNamespace is the ImageStream .metadata.namespace value, e.g. "ocp".
	ISNamespace string

	// Organization is the quay organization to mirror into.
	Organization string

	// Repository is the quay repository in Organization to mirror into.
	Repository string

	// OutputDir is the directory to write generated files to.
	OutputDir string

	// ExcludeArches lists architectures (brew nomenclature) to exclude from
	// payload generation.
	ExcludeArches []string

	// PermitMismatchedSiblings ignores sibling images building from
	// different commits.
	PermitMismatchedSiblings bool

	// PermitStaleRPMs ignores builds which installed outdated RPMs.
	PermitStaleRPMs bool

	// PermitRHCOSInconsistencies ignores RPM version divergence across
	// RHCOS builds.
	PermitRHCOSInconsistencies bool

	// PermitInvalidReferenceReleases ignores reference nightlies that do
	// not reflect current assembly state. Do not use outside of testing.
	PermitInvalidReferenceReleases bool
}

func (o *genPayloadOptions) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.AssemblyState, "assembly-state", "", "Path to the resolved assembly state file.")
	fs.StringVar(&o.ISName, "is-name", "", "ImageStream .metadata.name value. For example '4.9-art-latest'.")
	fs.StringVar(&o.ISNamespace, "is-namespace", payload.DefaultImageStreamNamespace, "ImageStream .metadata.namespace value.")
	fs.StringVar(&o.Organization, "organization", payload.DefaultOrganization, "Quay organization to mirror into.")
	fs.StringVar(&o.Repository, "repository", payload.DefaultRepository, "Quay repository in the organization to mirror into.")
	fs.StringVar(&o.OutputDir, "output-dir", ".", "Directory to write generated files to.")
	fs.StringArrayVar(&o.ExcludeArches, "exclude-arch", nil, "Architecture (brew nomenclature) to exclude from payload generation.")
	fs.BoolVar(&o.PermitMismatchedSiblings, "permit-mismatched-siblings", false, "Ignore sibling images building from different commits.")
	fs.BoolVar(&o.PermitStaleRPMs, "permit-stale-rpms", false, "Ignore builds which installed outdated RPMs.")
	fs.BoolVar(&o.PermitRHCOSInconsistencies, "permit-rhcos-inconsistencies", false, "Ignore RPM version divergence across RHCOS builds.")
	fs.BoolVar(&o.PermitInvalidReferenceReleases, "permit-invalid-reference-releases", false, "Ignore if reference nightlies do not reflect current assembly state. Do not use outside of testing.")
}

func (o *genPayloadOptions) print() {
	log.Printf("GenPayload options:")
	log.Printf("  AssemblyState: %q", o.AssemblyState)
	log.Printf("  ISName: %q", o.ISName)
	log.Printf("  ISNamespace: %q", o.ISNamespace)
	log.Printf("  Organization: %q", o.Organization)
	log.Printf("  Repository: %q", o.Repository)
	log.Printf("  OutputDir: %q", o.OutputDir)
	log.Printf("  ExcludeArches: %v", o.ExcludeArches)
	log.Printf("  PermitMismatchedSiblings: %t", o.PermitMismatchedSiblings)
	log.Printf("  PermitStaleRPMs: %t", o.PermitStaleRPMs)
	log.Printf("  PermitRHCOSInconsistencies: %t", o.PermitRHCOSInconsistencies)
	log.Printf("  PermitInvalidReferenceReleases: %t", o.PermitInvalidReferenceReleases)
}

func genPayloadCmd(rootOpts *rootOptions) *cobra.Command {
	o := &genPayloadOptions{}
	cmd := &cobra.Command{
		Use:          genPayloadCommand,
		Short:        genPayloadDescription,
		Long:         genPayloadLongDescription,
		Example:      genPayloadExample,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			o.print()
			log.Printf("---")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenPayload(rootOpts, o)
		},
	}
	o.AddFlags(cmd.Flags())
	cobra.CheckErr(cmd.MarkFlagRequired("assembly-state"))
	return cmd
}

func runGenPayload(rootOpts *rootOptions, o *genPayloadOptions) error {
	log.Printf("Collecting latest information associated with the assembly from %q", o.AssemblyState)
	state, err := assembly.LoadState(o.AssemblyState)
	if err != nil {
		return err
	}

	generator := payload.NewGenerator(payload.Options{
		BaseImageStreamName:            o.ISName,
		BaseNamespace:                  o.ISNamespace,
		Organization:                   o.Organization,
		Repository:                     o.Repository,
		OutputDir:                      o.OutputDir,
		ExcludeArches:                  o.ExcludeArches,
		PermitMismatchedSiblings:       o.PermitMismatchedSiblings,
		PermitStaleRPMs:                o.PermitStaleRPMs,
		PermitRHCOSInconsistencies:     o.PermitRHCOSInconsistencies,
		PermitInvalidReferenceReleases: o.PermitInvalidReferenceReleases,
	}, state, newOCReleaseInfoFetcher(rootOpts.Debug))

	report, err := generator.Run()
	if err != nil {
		return err
	}

	out, err := report.YAML()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
