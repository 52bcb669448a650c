package decode

import "bytes"

// DiscardUntilPreamble scans forward one byte at a time, keeping a
// 4-byte sliding window, until the window matches the preamble magic,
// then puts those bytes back so the codec re-consumes them normally.
// Used only where a structure's start offset cannot yet be computed
// deterministically; this is an acknowledged schema gap, not a general
// misparse-recovery strategy.
func (d *Decoder) DiscardUntilPreamble() error {
	const op = "discardUntilPreamble"

	start := d.cur.Offset()
	window := make([]byte, len(PreambleMagic))
	for !bytes.Equal(window, PreambleMagic) {
		b, err := d.cur.ReadU8(op)
		if err != nil {
			return err
		}
		copy(window, window[1:])
		window[len(window)-1] = b
	}

	d.cur.Putback(len(PreambleMagic))
	if skipped := d.cur.Offset() - start; skipped > 0 {
		d.log.Debug().
			Int64("offset", start).
			Int64("skipped", skipped).
			Msg("resynchronized on preamble")
	}
	return nil
}
