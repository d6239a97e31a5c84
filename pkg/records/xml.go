package records

import (
	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

var xmlLayout = layout.New("XMLRecord",
	layout.U32,        // system time
	layout.U32,        // display time
	layout.Bytes(490), // NUL-padded XML payload
	layout.U16,        // crc
)

// XMLRecord carries a free-text XML payload, such as the manufacturing
// data and software parameter blobs the receiver stores.
type XMLRecord struct {
	TimestampedRecord
}

// DecodeXML decodes the XML record at the given index.
func DecodeXML(buf []byte, index int) (*XMLRecord, error) {
	rec, err := decodeFixed(buf, xmlLayout, index)
	if err != nil {
		return nil, err
	}
	return &XMLRecord{TimestampedRecord{rec}}, nil
}

// XMLData returns the payload with NUL padding stripped.
func (r *XMLRecord) XMLData() string {
	return byteStringText(r.bytes(2))
}

func (r *XMLRecord) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	out.Set("xmldata", r.XMLData())
	return out
}
