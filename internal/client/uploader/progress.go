package uploader

import "io"

// progressReader reports cumulative read percentage as the request body is
// consumed. The callback fires only when the rounded percentage grows, so
// progress is monotone.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	last       int
	onProgress func(pct int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > p.last {
			p.last = pct
			p.onProgress(pct)
		}
	}
	return n, err
}
