// Package cratekit decodes Serato DJ library files: .crate files and the
// "database V2" track catalog.
//
// # Quick Start
//
// Reading a crate:
//
//	c, err := cratekit.OpenCrate("_Serato_/Subcrates/House.crate")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(c, c.Columns)
//	for _, path := range c.Tracks {
//		fmt.Println(path)
//	}
//
// Reading the database:
//
//	db, err := cratekit.OpenDatabase("_Serato_/database V2")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range db.Tracks {
//		bpm, _ := t.BPM()
//		fmt.Printf("%s - %s (%d)\n", t.Artist(), t.Title(), bpm)
//	}
//
// Reading a whole library root:
//
//	lib, err := cratekit.OpenLibrary("_Serato_")
//
// # File Layout
//
// Both files start with "vrsn", two zero bytes, an 8-byte UTF-16BE version
// and a UTF-16BE marker naming the file kind. A crate continues with
// column (ovct) and sort (osrt) descriptors and then one otrk section per
// track path. The database is a stream of tag-length-value records; each
// otrk record nests the fields of one track.
//
// Crate names encode their hierarchy with "%%": "Sets%%Warmup" is Warmup
// inside Sets. See Crate.Path, Crate.Parent and Library.Children.
//
// # Error Handling
//
// cratekit distinguishes between fatal errors and warnings:
//
//   - Fatal errors stop the parse and no document is returned. Match them
//     with errors.Is against ErrEndOfInput, ErrFormatMismatch,
//     ErrFormatAssertion and ErrUnknownSection, or errors.As against the
//     typed errors, which carry the byte offset and a hex window around it.
//   - Warnings describe data that was skipped: an unknown database record,
//     an unregistered field, a tempo that is not a number.
//
// WithStrictParsing turns warnings into errors; WithIgnoreWarnings drops
// them. WithLogger reports the same events through go-kit/log.
//
// # Database Fields
//
// Every known field tag decodes as UTF-16BE text. The tempo (tbpm) is
// rounded half to even and stored as an integer. Unknown tags are kept as
// raw bytes in Track.Unknown unless WithUnknownFields(DropUnknown) is set.
// WithFieldHandler replaces or adds decoders per tag.
package cratekit
