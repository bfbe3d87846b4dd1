// SPDX-License-Identifier: EPL-2.0

package shell

import "errors"

var ErrUnbalancedQuotes = errors.New("cannot parse input, check the quotation marks")
