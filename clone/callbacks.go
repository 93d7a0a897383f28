package clone

// Progress reports cumulative clone progress after a packet exchange.
// Passed to ProgressCallback during download and upload.
type Progress struct {
	// Message describes the running operation ("Cloning from radio",
	// "Uploading to radio")
	Message string

	// Current is the cumulative number of region bytes transferred
	Current int

	// Total is the number of region bytes the operation will move
	Total int
}

// ProgressCallback is called after every packet exchange to report
// progress. It is purely observational: implementations should return
// quickly and must not touch the transport.
//
// Example:
//
//	c := clone.New(port, model,
//	    clone.WithProgressCallback(func(p clone.Progress) {
//	        fmt.Printf("%s: %d/%d\n", p.Message, p.Current, p.Total)
//	    }),
//	)
type ProgressCallback func(Progress)
