// Package wineventlog reads classic Windows event logs through advapi32
// (OpenEventLogW, ReadEventLogW, CloseEventLog) in backward sequential
// order. The provider registers itself as "wineventlog" on Windows builds;
// record decoding is portable so it can be tested anywhere.
package wineventlog
