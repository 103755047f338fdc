// Package scope prepares rendered audio for display.
//
// RisingZeroCrossing and Align phase-align a periodic waveform so successive
// frames draw at the same position. Analyzer computes a windowed magnitude
// spectrum of the most recent samples of a buffer. Nothing here runs on the
// audio thread; Analyzer reuses its buffers but is not safe for concurrent
// use.
package scope
