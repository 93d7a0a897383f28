// Package radio describes the supported Retevis HA1-series radio models:
// their memory region catalogues and the fixed-size device image the clone
// engine assembles and disassembles.
//
// The region catalogue is static data, not code. A Region names a
// (wire id, offset, length) slice of the flat image; device-managed regions
// are downloaded but never uploaded. Offsets and sizes match the factory
// programming software for the HA1G and HA1UV.
package radio
