// Package seclog reads a Windows event log channel, keeps the records whose
// codes belong to a catalog of suspicious-activity patterns, and filters the
// result by text and date.
//
// Quick start:
//
//	s, err := seclog.New(seclog.WithChannel("Security"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := s.Load(ctx); err != nil {
//	    log.Print(err) // partial results are kept on read errors
//	}
//	for _, e := range s.Filter("logon", time.Time{}, time.Time{}) {
//	    fmt.Println(e.Date, e.Time, e.Code, e.Pattern)
//	}
//
// Off Windows, point the scanner at an NDJSON dump with WithReplayFile.
// A Scanner is safe for concurrent use; only one Load runs at a time.
package seclog
