package flashing

import (
	stderrors "errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/beevik/etree"
)

// XML element and attribute names of the flashing schema
const (
	elemFlashing        = "flashing"
	elemHeader          = "header"
	elemPhoneModel      = "phone_model"
	elemSoftwareVersion = "software_version"
	elemSparsing        = "sparsing"
	elemInterfaces      = "interfaces"
	elemInterface       = "interface"
	elemSteps           = "steps"
	elemStep            = "step"

	attrModel         = "model"
	attrVersion       = "version"
	attrEnabled       = "enabled"
	attrMaxSparseSize = "max-sparse-size"
	attrName          = "name"
	attrInterface     = "interface"
	attrMD5           = "MD5"
	attrOperation     = "operation"
	attrPartition     = "partition"
	attrFilename      = "filename"
	attrVar           = "var"
)

// ParseFile reads and parses the flashing document at path.
// The caller guards path beforehand.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotReadable, "cannot open flashing document %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	doc, err := Parse(f)
	if err != nil {
		var fe *errors.FlashError
		if stderrors.As(err, &fe) {
			fe.WithDetail("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// Parse reads a flashing document from r. The whole document is read and
// validated before it is returned.
func Parse(r io.Reader) (*Document, error) {
	xml := etree.NewDocument()
	if _, err := xml.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedDocument, "cannot parse flashing document")
	}

	root := xml.Root()
	if root == nil {
		return nil, errors.New(errors.ErrMalformedDocument, "flashing document is empty")
	}
	if root.Tag != elemFlashing {
		return nil, errors.Newf(errors.ErrMalformedDocument,
			"root element is <%s>, expected <%s>", root.Tag, elemFlashing).
			WithDetail("root", root.Tag)
	}

	doc := &Document{}

	if h := root.SelectElement(elemHeader); h != nil {
		header, err := parseHeader(h)
		if err != nil {
			return nil, err
		}
		doc.Header = header
	}

	steps := root.SelectElement(elemSteps)
	if steps == nil {
		return nil, errors.Newf(errors.ErrMalformedDocument, "missing <%s> element", elemSteps)
	}
	doc.Steps = parseSteps(steps)

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseHeader(h *etree.Element) (*Header, error) {
	header := &Header{}

	if e := h.SelectElement(elemPhoneModel); e != nil {
		header.PhoneModel = attr(e, attrModel)
	}
	if e := h.SelectElement(elemSoftwareVersion); e != nil {
		header.SoftwareVersion = attr(e, attrVersion)
	}
	if e := h.SelectElement(elemSparsing); e != nil {
		sparsing, err := parseSparsing(e)
		if err != nil {
			return nil, err
		}
		header.Sparsing = sparsing
	}
	if e := h.SelectElement(elemInterfaces); e != nil {
		for _, iface := range e.SelectElements(elemInterface) {
			header.Interfaces = append(header.Interfaces, Interface{Name: attr(iface, attrName)})
		}
	}

	return header, nil
}

func parseSparsing(e *etree.Element) (*Sparsing, error) {
	s := &Sparsing{}

	if v := attr(e, attrEnabled); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrMalformedDocument,
				"invalid %s=%q on <%s>", attrEnabled, v, elemSparsing)
		}
		s.Enabled = enabled
	}
	if v := attr(e, attrMaxSparseSize); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrMalformedDocument,
				"invalid %s=%q on <%s>", attrMaxSparseSize, v, elemSparsing)
		}
		s.MaxSparseSize = size
	}

	return s, nil
}

func parseSteps(e *etree.Element) StepList {
	list := StepList{
		Interface: attr(e, attrInterface),
		Steps:     []Step{},
	}
	for _, s := range e.SelectElements(elemStep) {
		list.Steps = append(list.Steps, Step{
			Operation:      attr(s, attrOperation),
			Partition:      attr(s, attrPartition),
			Filename:       attr(s, attrFilename),
			ExpectedDigest: attr(s, attrMD5),
			Var:            attr(s, attrVar),
		})
	}
	return list
}

func attr(e *etree.Element, key string) string {
	return strings.TrimSpace(e.SelectAttrValue(key, ""))
}
