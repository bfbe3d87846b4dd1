// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	ErrInvalidInterval = errors.New("output: pump interval must be positive")
	ErrSinkClosed      = errors.New("output: sink is closed")
)
