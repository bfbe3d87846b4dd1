// SPDX-License-Identifier: EPL-2.0

//go:build soundscape_debug

package sound

// strictInvariants turns resolver violations into panics.
const strictInvariants = true
