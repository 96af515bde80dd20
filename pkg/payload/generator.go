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

package payload

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"

	"github.com/openshift-eng/artrel/pkg/assembly"
)

// Options configures one payload generation run.
type Options struct {
	// BaseImageStreamName is the imagestream name before arch/privacy
	// suffixing, e.g. "4.9-art-latest". Derived from the assembly when
	// empty.
	BaseImageStreamName string

	// BaseNamespace is the imagestream namespace before suffixing.
	BaseNamespace string

	// Organization and Repository name the quay location payload content is
	// mirrored into, combined as quay.io/ORGANIZATION/REPOSITORY.
	Organization string
	Repository   string

	// OutputDir is where mirroring and imagestream files are written.
	OutputDir string

	// ExcludeArches lists brew architectures to skip entirely.
	ExcludeArches []string

	// PermitMismatchedSiblings downgrades sibling commit mismatches from
	// fatal to a recorded warning.
	PermitMismatchedSiblings bool

	// PermitStaleRPMs downgrades outdated-RPM findings from fatal to a
	// recorded warning.
	PermitStaleRPMs bool

	// PermitRHCOSInconsistencies downgrades RPM version divergence across
	// RHCOS builds from fatal to a recorded warning.
	PermitRHCOSInconsistencies bool

	// PermitInvalidReferenceReleases downgrades reference nightly drift
	// from fatal to a recorded warning. Do not use outside of testing.
	PermitInvalidReferenceReleases bool
}

// Report is the structured summary of one generation run, printed as YAML
// for operators and downstream automation.
type Report struct {
	NonReleaseImages            []string            `json:"non_release_images"`
	ReleaseImages               []string            `json:"release_images"`
	MismatchedSiblings          []string            `json:"mismatched_siblings"`
	MissingImageBuilds          []string            `json:"missing_image_builds"`
	PayloadEntryInconsistencies map[string][]string `json:"payload_entry_inconsistencies"`
	AssemblyIssues              []string            `json:"assembly_issues"`
}

// YAML serializes the report.
func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Generator derives the architecture specific release payload inputs for an
// assembly: SRC=DEST mirroring definitions for 'oc image mirror' and
// imagestream manifests for 'oc apply'. Applying the imagestreams causes
// the release controller to assemble new payloads from the mirrored images.
type Generator struct {
	opts    Options
	state   *assembly.State
	fetcher ReleaseInfoFetcher
}

// NewGenerator prepares a generator, filling defaulted options from the
// assembly state.
func NewGenerator(opts Options, state *assembly.State, fetcher ReleaseInfoFetcher) *Generator {
	if opts.BaseImageStreamName == "" {
		opts.BaseImageStreamName = DefaultImageStreamBaseName(state.MajorMinor, state.Assembly.Name)
	}
	if opts.BaseNamespace == "" {
		opts.BaseNamespace = DefaultImageStreamNamespace
	}
	if opts.Organization == "" {
		opts.Organization = DefaultOrganization
	}
	if opts.Repository == "" {
		opts.Repository = DefaultRepository
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &Generator{opts: opts, state: state, fetcher: fetcher}
}

// Run performs the whole generation: per-architecture entry computation and
// file output, then the assembly wide consistency checks. Structural
// impossibilities abort with an error; content inconsistencies abort too
// unless the corresponding Permit option downgrades them to warnings.
func (g *Generator) Run() (*Report, error) {
	asm := g.state.Assembly

	if asm.Name != "stream" && strings.Contains(g.opts.BaseImageStreamName, "art-latest") {
		return nil, errors.Errorf("the art-latest imagestreams should not be used for an assembly other than stream (got %q)", asm.Name)
	}

	log.Printf("Checking for mismatched siblings...")
	mismatched := FindMismatchedSiblings(asm.SelectedBuilds())
	mismatchedNVRs := make([]string, 0, len(mismatched))
	for _, b := range mismatched {
		mismatchedNVRs = append(mismatchedNVRs, b.NVR)
	}

	report := &Report{
		NonReleaseImages:            asm.NonReleaseComponents(),
		ReleaseImages:               releaseImageKeys(asm),
		MismatchedSiblings:          mismatchedNVRs,
		MissingImageBuilds:          asm.MissingBuilds(),
		PayloadEntryInconsistencies: map[string][]string{},
	}

	// Only stream and standard assemblies enforce sibling consistency;
	// custom and test assemblies deliberately mix builds.
	var assemblyIssues []string
	if len(mismatched) > 0 && (asm.Type == assembly.TypeStream || asm.Type == assembly.TypeStandard) {
		msg := fmt.Sprintf("image siblings were built from the same repo but different commits (%s); this is not permitted for %s assemblies", strings.Join(mismatchedNVRs, ", "), asm.Type)
		if !g.opts.PermitMismatchedSiblings {
			return nil, errors.New(msg)
		}
		log.Printf("WARNING: %s", msg)
		assemblyIssues = append(assemblyIssues, "mismatched siblings: "+strings.Join(mismatchedNVRs, ", "))
	}

	cache, err := PopulateBuildCache(asm, g.state.LatestRPMs)
	if err != nil {
		return nil, err
	}
	if cache.HasIssues() && !g.opts.PermitStaleRPMs {
		return nil, errors.Errorf("builds selected by assembly %s installed outdated RPMs; re-run the group scan or pass --permit-stale-rpms", asm.Name)
	}

	// Only nightlies have the concept of private and public payloads.
	privacyModes := []bool{false}
	if asm.Type == assembly.TypeStream {
		privacyModes = []bool{false, true}
	}

	targetedRHCOS := map[bool][]*assembly.RHCOSBuild{}

	excluded := sets.NewString(g.opts.ExcludeArches...)
	arches := append([]string(nil), g.state.Arches...)
	sort.Strings(arches)

	for _, arch := range arches {
		if excluded.Has(arch) {
			log.Printf("Excluding payload files for architecture: %s", arch)
			continue
		}

		entries, err := g.archEntries(arch, cache, report)
		if err != nil {
			return nil, err
		}

		for _, private := range privacyModes {
			rhcosBuild, err := g.state.RHCOSFor(arch, private)
			if err != nil {
				return nil, err
			}
			targetedRHCOS[private] = append(targetedRHCOS[private], rhcosBuild)
		}

		if err := g.writeMirroringFile(arch, entries); err != nil {
			return nil, err
		}
		for _, private := range privacyModes {
			if err := g.writeImageStreamFile(arch, private, entries, assemblyIssues); err != nil {
				return nil, err
			}
		}
	}

	for _, private := range privacyModes {
		inconsistencies, err := FindRHCOSRPMInconsistencies(targetedRHCOS[private])
		if err != nil {
			return nil, err
		}
		if len(inconsistencies) > 0 {
			msg := fmt.Sprintf("found RHCOS RPM inconsistencies (private=%t): %v", private, inconsistencies)
			if !g.opts.PermitRHCOSInconsistencies {
				return nil, errors.New(msg)
			}
			log.Printf("WARNING: %s", msg)
			for _, name := range sets.StringKeySet(inconsistencies).List() {
				assemblyIssues = append(assemblyIssues, fmt.Sprintf("RHCOS rpm %s installed at versions %s (private=%t)", name, strings.Join(inconsistencies[name], ", "), private))
			}
		}
	}

	// If the assembly claims to reproduce reference nightlies, our computed
	// payload must match them exactly.
	nightlyIssues, err := CheckNightliesConsistency(asm, g.state, g.fetcher, g.state.MajorMinor)
	if err != nil {
		return nil, err
	}
	if len(nightlyIssues) > 0 {
		msg := "nightlies in reference-releases did not match constructed payload:\n  " + strings.Join(nightlyIssues, "\n  ")
		if !g.opts.PermitInvalidReferenceReleases {
			return nil, errors.New(msg)
		}
		log.Printf("WARNING: %s", msg)
		assemblyIssues = append(assemblyIssues, nightlyIssues...)
	}

	report.AssemblyIssues = assemblyIssues
	return report, nil
}

// archEntries computes the entry set for one architecture, attaches cached
// and RHCOS findings, and records per-tag inconsistencies in the report.
func (g *Generator) archEntries(arch string, cache *BuildCache, report *Report) (map[string]*Entry, error) {
	asm := g.state.Assembly
	destRepo := fmt.Sprintf("quay.io/%s/%s", g.opts.Organization, g.opts.Repository)

	entries, err := FindEntries(asm, g.state, arch, destRepo)
	if err != nil {
		return nil, err
	}

	for _, tagName := range sortedTagNames(entries) {
		entry := entries[tagName]
		switch entry.Kind() {
		case ComponentEntry:
			entry.AddIssues(cache.Issues(entry.Build().ID)...)
		case RHCOSEntry:
			if asm.Type == assembly.TypeStream {
				// For stream alone, the very latest RPMs must be installed.
				stale, err := FindStaleRPMs(entry.RHCOS().RPMs, g.state.LatestRPMs)
				if err != nil {
					return nil, err
				}
				if len(stale) > 0 && !g.opts.PermitStaleRPMs {
					return nil, errors.Errorf("found outdated RPMs installed in %s: %s; this will likely self correct once the next RHCOS build takes place", entry.RHCOS(), strings.Join(stale, ", "))
				}
				entry.AddIssues(stale...)
			}
		}
		if issues := entry.Issues(); len(issues) > 0 {
			merged := sets.NewString(report.PayloadEntryInconsistencies[tagName]...)
			merged.Insert(issues...)
			report.PayloadEntryInconsistencies[tagName] = merged.List()
		}
	}
	return entries, nil
}

// writeMirroringFile writes the SRC=DEST definitions for 'oc image mirror'.
// There is no -priv variant: the images synced are the assembly's canonical
// content, and the imagestream alone decides whether an image becomes part
// of a public release. Entries without an archive (machine-os-content) are
// mirrored by a separate process and skipped here.
func (g *Generator) writeMirroringFile(arch string, entries map[string]*Entry) error {
	lines := sets.NewString()
	for _, entry := range entries {
		if entry.Archive() == nil {
			continue
		}
		lines.Insert(fmt.Sprintf("%s=%s", entry.Archive().Pullspec, entry.DestPullspec()))
	}

	path := filepath.Join(g.opts.OutputDir, "src_dest."+arch)
	content := strings.Join(lines.List(), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "writing mirroring file %s", path)
	}
	return nil
}

// writeImageStreamFile writes the imagestream manifest for one architecture
// and privacy mode. Embargoed builds are withheld from the public variant.
func (g *Generator) writeImageStreamFile(arch string, private bool, entries map[string]*Entry, assemblyIssues []string) error {
	log.Printf("Building payload files for architecture: %s; private: %t", arch, private)

	var istags []TagReference
	for _, tagName := range sortedTagNames(entries) {
		entry := entries[tagName]
		if entry.Kind() == ComponentEntry && entry.Build().Embargoed && !private {
			// Don't send this istag update to the public release controller.
			continue
		}
		istags = append(istags, BuildISTag(tagName, entry))
	}

	name, namespace := ImageStreamNameAndNamespace(g.opts.BaseImageStreamName, g.opts.BaseNamespace, arch, private)
	istream := BuildImageStream(name, namespace, istags, assemblyIssues)

	data, err := yaml.Marshal(istream)
	if err != nil {
		return err
	}

	suffix := arch
	if private {
		suffix += "-priv"
	}
	path := filepath.Join(g.opts.OutputDir, "image_stream."+suffix+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing imagestream file %s", path)
	}
	return nil
}

func releaseImageKeys(asm *assembly.Assembly) []string {
	var keys []string
	for _, c := range asm.ReleaseComponents() {
		keys = append(keys, c.DistgitKey)
	}
	return keys
}

func sortedTagNames(entries map[string]*Entry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
