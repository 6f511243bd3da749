// SPDX-License-Identifier: EPL-2.0

package pipeline

import "errors"

var (
	ErrNoPorts = errors.New("pipeline: no ports")
	ErrNoStage = errors.New("pipeline: no stage")
)
