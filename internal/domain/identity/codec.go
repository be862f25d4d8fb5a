package identity

import (
	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// EncodeLinks renders a link collection as the JSON document shape exchanged
// with the persistence collaborator.
func EncodeLinks(links []PlayerLink) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(links); err != nil {
		return nil, crerr.Wrap(err, "encode player links")
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// DecodeLinks parses a link collection document. Every decoded link is
// validated so malformed records are caught at the boundary instead of deep
// inside matching logic.
func DecodeLinks(data []byte) ([]PlayerLink, error) {
	var links []PlayerLink
	if err := sonic.Unmarshal(data, &links); err != nil {
		return nil, crerr.Wrap(err, "decode player links")
	}

	for _, link := range links {
		if err := link.Validate(); err != nil {
			return nil, crerr.Wrapf(err, "invalid player link id=%s", link.ID)
		}
	}

	return links, nil
}
