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
	"context"

	"github.com/cenkalti/backoff/v5"
)

// retry invokes op up to attempts times with no delay between tries,
// returning the first success or the error from the final attempt. Remote
// lookups against the release controller registry fail transiently often
// enough that a small fixed budget is worthwhile.
func retry[T any](attempts uint, op func() (T, error)) (T, error) {
	return backoff.Retry(
		context.Background(),
		backoff.Operation[T](op),
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(attempts),
	)
}
