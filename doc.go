// Package iscc derives similarity-preserving content identifiers for
// digital assets.
//
// An identifier splits into independent component codes: meta codes
// over descriptive metadata, content codes over the extracted content
// (text, image, audio, or a mix), data codes over the encoded bytes,
// and instance codes over the exact byte sequence. Similar inputs
// yield component codes with small Hamming distances, so identifiers
// cluster near-duplicates instead of only matching exact copies.
//
// # Quick Start
//
// One-off derivations use the package-level functions:
//
//	meta, _ := iscc.MetaID("The Never-Ending Story", "")
//	text, _ := iscc.ContentIDText(extractedText, false)
//	data, _ := iscc.DataID(file)
//
// Repeated derivations share a Generator:
//
//	gen, _ := iscc.New(
//	    iscc.WithLogger(iscc.NewJSONLogger(slog.LevelInfo)),
//	    iscc.WithMetricsCollector(metrics),
//	)
//	code, _ := gen.ContentIDText(extractedText, false)
//
// A whole document derives in one call, components in parallel:
//
//	sum, _ := gen.Compute(ctx, &iscc.Document{
//	    Title: "The Never-Ending Story",
//	    Text:  extractedText,
//	    Data:  rawBytes,
//	})
//	fmt.Println(sum.ISCC)
//
// # Component Codes
//
// Every component code prints as 13 symbols of a fixed-length base58
// variant: 2 symbols of header (kind and partial flag) and 11 symbols
// of 8-byte body.
//
//	Meta-ID      similarity hash over metadata n-grams
//	Content-ID   per-media-type similarity hash (text, image, audio, mixed)
//	Data-ID      minhash over content-defined chunks of the encoded bytes
//	Instance-ID  truncated double-SHA256 tree root, exact match only
//
// Codes of the same kind compare with Distance; small distances mean
// similar inputs for every kind but instance, which matches exactly or
// not at all.
//
// # Determinism
//
// Every derivation is a pure function of its input. There is no
// randomness, no environment dependence and no platform dependence:
// the same input yields the same identifier on every machine and every
// release. Options that change derived codes (metadata trim budgets,
// chunking parameters, text encodings) say so in their documentation.
//
// # Streaming
//
// Data and instance codes read their io.Reader exactly once in bounded
// memory, so arbitrarily large files derive without loading them:
//
//	f, _ := os.Open("movie.mp4")
//	defer f.Close()
//	inst, _ := gen.InstanceID(f)
//	fmt.Printf("%s %x\n", inst, inst.Root)
//
// # Key Features
//
//   - Similarity-preserving codes for metadata, text, image, audio and raw data
//   - Exact-match instance codes with a full checksum tree root
//   - Content-defined chunking, shift-resistant data codes
//   - Granular text features for passage-level matching
//   - Streaming derivation in bounded memory
//   - Structured logging (slog) and pluggable metrics
package iscc
