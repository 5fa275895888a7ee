// Package testutil provides test doubles and fixtures shared by package tests.
//
//   - MockTranscriber: a configurable api.Transcriber with per-file responses,
//     errors and latency, plus call and concurrency tracking
//   - MockRunDAO: an in-memory repository.RunDAO with per-method error injection
//   - CreateTestAudioFile for a small wav in a test's temp dir
package testutil
