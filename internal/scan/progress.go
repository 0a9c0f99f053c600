package scan

// Progress reports how far an in-flight scan has gotten, in units of
// candidate addresses considered. A scan's producer goroutine sends on a
// chan Progress roughly once per config.ProgressBatch addresses (spec.md
// §4.5's "roughly every 1000 entries") and closes the channel when the scan
// finishes or fails, which is the idiomatic Go analogue of the teacher's
// single-producer/single-consumer RPC-call channels.
type Progress struct {
	Scanned uint64
	Total   uint64
}
