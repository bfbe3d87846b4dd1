// SPDX-License-Identifier: EPL-2.0

// Package soundscape plays many independently controlled sounds at once and
// mixes them into a single real-time output stream.
//
// The work is split across the subpackages:
//
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis and formats/flac
//     decode files into audio.Source streams.
//   - audio resamples streams and converts their channel layout.
//   - sound holds one decoded sound with its clip window, loop, delay and
//     transport state.
//   - engine owns the collection, the groups and the mixer, and applies
//     commands between output blocks.
//   - output feeds the engine's blocks to a WAV file, and output/device to
//     the sound card.
//
// This package ties decoding to the engine: FileLoader turns a path into a
// fully decoded sound.PCM in the engine's format.
//
// # Quick Start
//
//	loader := soundscape.NewFileLoader(48000, 2)
//	eng, _ := engine.New(engine.Config{SampleRate: 48000, Channels: 2}, loader)
//
//	eng.Add("rain.ogg", "rain")
//	eng.Loop(engine.Select("rain"), 0)
//	eng.Play(engine.Select("rain"))
//
//	dev, _ := device.Open(eng, device.Options{})
//	defer dev.Close()
//
// # Decoding Pipeline
//
// Decode works on any audio.Source and only converts what differs:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	pcm, _ := soundscape.Decode(src, 48000, 2, 4096)
//
// # Supported Formats
//
//   - WAV, 16/24/32-bit integer PCM
//   - AIFF, 16/24/32-bit integer PCM
//   - MP3
//   - Ogg Vorbis
//   - FLAC
package soundscape
