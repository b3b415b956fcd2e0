// Package compress provides the transparent compression streams an R object
// file may be wrapped in.
//
// R's own save()/saveRDS() gzip their output by default and load()/readRDS()
// sniff the stream, so gzip is the codec selected whenever compression is
// enabled without naming an algorithm. The remaining codecs trade R
// compatibility for speed or ratio:
//
//   - None: the serialized object as is (the default for ASCII output)
//   - Gzip: readable by R directly
//   - Zstd: best ratio, needs decompression before R can read it
//   - S2: fastest, needs decompression before R can read it
//   - LZ4: fast frame format, needs decompression before R can read it
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionGzip, "output")
//	if err != nil {
//	    return err
//	}
//	zw, err := codec.NewWriter(file)
//	if err != nil {
//	    return err
//	}
//	// ... write the serialized object to zw ...
//	if err := zw.Close(); err != nil { // flushes the trailer, leaves file open
//	    return err
//	}
//
// Readers sniff the stream with Detect before picking a codec:
//
//	header, _ := br.Peek(compress.DetectSize)
//	codec, _ := compress.GetCodec(compress.Detect(header))
//	zr, err := codec.NewReader(br)
//
// # Concurrency
//
// Writers and readers are single-threaded and must be used by one goroutine.
// Codec values themselves are immutable and safe to share.
package compress
