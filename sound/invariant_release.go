// SPDX-License-Identifier: EPL-2.0

//go:build !soundscape_debug

package sound

const strictInvariants = false
