// Package core holds the pieces every operator in this module shares: the
// per-sample operator capabilities, processing configuration, numeric guards
// used on the real-time path, and the configuration error sentinel.
package core
