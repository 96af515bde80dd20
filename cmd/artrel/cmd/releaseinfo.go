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
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/openshift-eng/artrel/pkg/payload"
)

// ocReleaseInfoFetcher retrieves published release manifests through
// 'oc adm release info'. The retry budget around fetches lives in the
// payload package; this does a single attempt per call.
type ocReleaseInfoFetcher struct {
	debug bool
}

func newOCReleaseInfoFetcher(debug bool) payload.ReleaseInfoFetcher {
	return &ocReleaseInfoFetcher{debug: debug}
}

func (f *ocReleaseInfoFetcher) Fetch(pullspec string) (*payload.ReleaseInfo, error) {
	cmd := exec.Command("oc", "adm", "release", "info", pullspec, "-o=json")
	if f.debug {
		cmd.Stderr = os.Stderr
	}
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running 'oc adm release info %s': %w", pullspec, err)
	}

	info := payload.ReleaseInfo{}
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("decoding release info for %s: %w", pullspec, err)
	}
	return &info, nil
}
