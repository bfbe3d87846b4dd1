// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files (16, 24 or 32-bit PCM) with
// github.com/go-audio/aiff into float32 samples in [-1.0, 1.0].
package aiff
