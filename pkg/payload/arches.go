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
	"strings"

	"github.com/blang/semver"
)

var (
	// brewArchForGoArch translates go architecture nomenclature into the
	// brew nomenclature used throughout build metadata.
	brewArchForGoArch = map[string]string{
		"amd64":   "x86_64",
		"arm64":   "aarch64",
		"ppc64le": "ppc64le",
		"s390x":   "s390x",
		"multi":   "multi",
	}

	// goArchForBrewArch is the inverse of brewArchForGoArch.
	goArchForBrewArch = map[string]string{
		"x86_64":  "amd64",
		"aarch64": "arm64",
		"ppc64le": "ppc64le",
		"s390x":   "s390x",
		"multi":   "multi",
	}
)

// BrewArchForGoArch normalizes an architecture name to brew nomenclature.
// Names already in brew nomenclature pass through unchanged.
func BrewArchForGoArch(arch string) string {
	if _, ok := goArchForBrewArch[arch]; ok {
		return arch
	}
	if brew, ok := brewArchForGoArch[arch]; ok {
		return brew
	}
	return arch
}

// GoArchForBrewArch normalizes an architecture name to go nomenclature.
func GoArchForBrewArch(arch string) string {
	if _, ok := brewArchForGoArch[arch]; ok {
		return arch
	}
	if goArch, ok := goArchForBrewArch[arch]; ok {
		return goArch
	}
	return arch
}

// GoSuffixForArch returns the suffix appended to imagestream names and
// namespaces for an architecture and privacy mode. x86_64 is the unsuffixed
// default; private variants carry a trailing "-priv".
func GoSuffixForArch(arch string, private bool) string {
	suffix := ""
	if goArch := GoArchForBrewArch(arch); goArch != "amd64" {
		suffix = "-" + goArch
	}
	if private {
		suffix += "-priv"
	}
	return suffix
}

// ImageStreamNameAndNamespace derives the imagestream name and namespace
// for one architecture and privacy mode from their base values.
func ImageStreamNameAndNamespace(baseName, baseNamespace, brewArch string, private bool) (string, string) {
	suffix := GoSuffixForArch(brewArch, private)
	return baseName + suffix, baseNamespace + suffix
}

// DefaultImageStreamBaseName returns the conventional imagestream base name
// for a group version and assembly. The stream assembly feeds the art-latest
// imagestreams; all other assemblies get a name scoped to themselves.
func DefaultImageStreamBaseName(majorMinor, assemblyName string) string {
	if assemblyName == "" || assemblyName == "stream" {
		return majorMinor + "-art-latest"
	}
	return fmt.Sprintf("%s-art-assembly-%s", majorMinor, assemblyName)
}

// NightlyNameComponents are the pieces of information encoded in a nightly
// release name such as "4.9.0-0.nightly-s390x-priv-2021-10-27-232624".
type NightlyNameComponents struct {
	// MajorMinor is the group version the nightly belongs to, e.g. "4.9".
	MajorMinor string

	// BrewArch is the architecture the nightly was built for, in brew
	// nomenclature.
	BrewArch string

	// Private is true for nightlies published to the private release
	// controller.
	Private bool
}

// IsolateNightlyNameComponents extracts the version, architecture and
// privacy mode encoded in a nightly release name. The unsuffixed default
// architecture is x86_64.
func IsolateNightlyNameComponents(nightly string) (NightlyNameComponents, error) {
	v, err := semver.Parse(nightly)
	if err != nil {
		return NightlyNameComponents{}, fmt.Errorf("nightly name %q does not begin with a version: %w", nightly, err)
	}

	out := NightlyNameComponents{
		MajorMinor: fmt.Sprintf("%d.%d", v.Major, v.Minor),
		BrewArch:   "x86_64",
		Private:    strings.Contains(nightly, "-priv"),
	}
	for goArch, brewArch := range brewArchForGoArch {
		if strings.Contains(nightly, "-"+goArch+"-") {
			out.BrewArch = brewArch
			break
		}
	}
	return out, nil
}

// ReleaseControllerPullspec returns the pullspec under which the release
// controller publishes the given nightly.
func ReleaseControllerPullspec(nightly string, brewArch string, private bool) string {
	suffix := GoSuffixForArch(brewArch, private)
	return fmt.Sprintf("registry.ci.openshift.org/ocp%s/release%s:%s", suffix, suffix, nightly)
}
