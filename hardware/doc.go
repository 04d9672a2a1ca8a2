// Package hardware is the base package for the Commodore 64 emulation. It
// and its sub-packages contain everything required for a headless
// emulation: the 6510 CPU, the VIC-II, the two CIA chips, the SID register
// file, PLA memory banking, the VC1541 disk drive and the IEC bus that
// connects it to the host.
//
// The Machine type is the root of the emulation and holds references to all
// of the sub-systems. From here the emulation can either be run continuously
// (with a callback checked once per frame or cycle) or stepped one clock at
// a time.
package hardware

