// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved stereo, so every source reports two
// channels regardless of how the file was encoded.
package mp3
