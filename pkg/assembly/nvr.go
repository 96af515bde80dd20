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

package assembly

import (
	"fmt"
	"strings"
)

// ParseNVR splits a brew NVR string into name, version and release. The
// version and release are the final two hyphen-separated fields; everything
// before them is the package name, which may itself contain hyphens.
func ParseNVR(nvr string) (name, version, release string, err error) {
	ri := strings.LastIndex(nvr, "-")
	if ri <= 0 {
		return "", "", "", fmt.Errorf("invalid NVR %q", nvr)
	}
	vi := strings.LastIndex(nvr[:ri], "-")
	if vi <= 0 {
		return "", "", "", fmt.Errorf("invalid NVR %q", nvr)
	}
	name, version, release = nvr[:vi], nvr[vi+1:ri], nvr[ri+1:]
	if version == "" || release == "" {
		return "", "", "", fmt.Errorf("invalid NVR %q", nvr)
	}
	return name, version, release, nil
}

// RPMName returns only the package name component of an NVR.
func RPMName(nvr string) (string, error) {
	name, _, _, err := ParseNVR(nvr)
	return name, err
}
