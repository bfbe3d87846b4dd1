// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files through github.com/gopxl/beep/v2/flac.
//
// beep streams stereo frames, so sources always report two channels; mono
// files come out with the same signal on both.
package flac
