package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/mygage/credit-report-service/dto"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOCR struct {
	fromFile func(fh *multipart.FileHeader) (string, error)
	fromPath func(path string) (string, error)
}

func (s *stubOCR) ExtractTextFromFile(fh *multipart.FileHeader) (string, error) {
	if s.fromFile == nil {
		return "", errors.New("no ocr stub")
	}
	return s.fromFile(fh)
}

func (s *stubOCR) ExtractTextFromPath(path string) (string, error) {
	if s.fromPath == nil {
		return "", errors.New("no ocr stub")
	}
	return s.fromPath(path)
}

type stubPDF struct {
	text   func(data []byte) (string, error)
	images func(data []byte) ([]image.Image, error)
}

func (s *stubPDF) ExtractText(data []byte) (string, error) {
	if s.text == nil {
		return "", errors.New("no pdf stub")
	}
	return s.text(data)
}

func (s *stubPDF) ExtractImages(data []byte) ([]image.Image, error) {
	if s.images == nil {
		return nil, errors.New("no pdf stub")
	}
	return s.images(data)
}

func makeFileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func newTestExtractService(ocr OCRClient, pdf PDFProcessor) *ExtractService {
	return NewExtractService(ocr, pdf, zap.NewNop())
}

func TestAggregateSectionsEmptySectionsYieldEmptyText(t *testing.T) {
	svc := newTestExtractService(&stubOCR{}, &stubPDF{})

	documents := svc.AggregateSections(map[dto.SectionKey][]*multipart.FileHeader{})

	require.Len(t, documents, 4)
	for _, key := range dto.SectionKeys() {
		assert.Equal(t, "", documents[key], "section %s", key)
	}
}

func TestAggregateSectionsFailedSectionGetsPlaceholder(t *testing.T) {
	ocr := &stubOCR{
		fromFile: func(*multipart.FileHeader) (string, error) {
			return "", errors.New("ocr exploded")
		},
	}
	svc := newTestExtractService(ocr, &stubPDF{})

	sections := map[dto.SectionKey][]*multipart.FileHeader{
		dto.SectionBank: {makeFileHeader(t, "scan.png", "image/png", "not a real png")},
	}
	documents := svc.AggregateSections(sections)

	assert.Equal(t, ExtractionFailedPlaceholder(dto.SectionBank), documents[dto.SectionBank])
	assert.Equal(t, "", documents[dto.SectionIncome])
	assert.Equal(t, "", documents[dto.SectionSavings])
	assert.Equal(t, "", documents[dto.SectionPersonal])
}

func TestAggregateSectionsJoinsInUploadOrder(t *testing.T) {
	svc := newTestExtractService(&stubOCR{}, &stubPDF{})

	sections := map[dto.SectionKey][]*multipart.FileHeader{
		dto.SectionBank: {
			makeFileHeader(t, "jan.txt", "text/plain", "january statement"),
			makeFileHeader(t, "feb.txt", "text/plain", "february statement"),
		},
	}
	documents := svc.AggregateSections(sections)

	assert.Equal(t, "january statement\n\nfebruary statement", documents[dto.SectionBank])
}

func TestAggregateSectionsFailedFileDoesNotAbortSiblings(t *testing.T) {
	ocr := &stubOCR{
		fromFile: func(*multipart.FileHeader) (string, error) {
			return "", errors.New("ocr exploded")
		},
	}
	svc := newTestExtractService(ocr, &stubPDF{})

	sections := map[dto.SectionKey][]*multipart.FileHeader{
		dto.SectionBank: {
			makeFileHeader(t, "broken.png", "image/png", "junk"),
			makeFileHeader(t, "notes.txt", "text/plain", "salary credited"),
		},
	}
	documents := svc.AggregateSections(sections)

	assert.Equal(t, "\n\nsalary credited", documents[dto.SectionBank])
}

func TestExtractFilePlainTextVerbatim(t *testing.T) {
	svc := newTestExtractService(&stubOCR{}, &stubPDF{})
	fh := makeFileHeader(t, "notes.txt", "text/plain", "raw statement notes\nline two")

	assert.Equal(t, "raw statement notes\nline two", svc.ExtractFile(fh))
}

func TestExtractFileImageUsesOCR(t *testing.T) {
	ocr := &stubOCR{
		fromFile: func(fh *multipart.FileHeader) (string, error) {
			assert.Equal(t, "slip.jpg", fh.Filename)
			return "NET SALARY 5,000", nil
		},
	}
	svc := newTestExtractService(ocr, &stubPDF{})
	fh := makeFileHeader(t, "slip.jpg", "image/jpeg", "fake jpeg bytes")

	assert.Equal(t, "NET SALARY 5,000", svc.ExtractFile(fh))
}

func makeQRFileHeader(t *testing.T, filename, payload string) *multipart.FileHeader {
	t.Helper()

	matrix, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, matrix))
	return makeFileHeader(t, filename, "image/png", buf.String())
}

func TestExtractFileImageAppendsQRPayload(t *testing.T) {
	ocr := &stubOCR{
		fromFile: func(*multipart.FileHeader) (string, error) {
			return "STATEMENT BALANCE 1,234.56\n", nil
		},
	}
	svc := newTestExtractService(ocr, &stubPDF{})
	fh := makeQRFileHeader(t, "estatement.png", "VERIFY-12345")

	assert.Equal(t, "STATEMENT BALANCE 1,234.56\nVERIFY-12345", svc.ExtractFile(fh))
}

func TestExtractFileImageQRPayloadAlone(t *testing.T) {
	ocr := &stubOCR{
		fromFile: func(*multipart.FileHeader) (string, error) {
			return "", nil
		},
	}
	svc := newTestExtractService(ocr, &stubPDF{})
	fh := makeQRFileHeader(t, "estatement.png", "VERIFY-12345")

	assert.Equal(t, "VERIFY-12345", svc.ExtractFile(fh))
}

func TestExtractFilePDFText(t *testing.T) {
	pdf := &stubPDF{
		text: func([]byte) (string, error) {
			return "statement of account for march with balances", nil
		},
	}
	svc := newTestExtractService(&stubOCR{}, pdf)
	fh := makeFileHeader(t, "statement.pdf", "application/pdf", "%PDF-1.4 fake")

	assert.Equal(t, "statement of account for march with balances", svc.ExtractFile(fh))
}

func TestExtractFileScannedPDFFallsBackToOCR(t *testing.T) {
	pdf := &stubPDF{
		text: func([]byte) (string, error) {
			return "  ", nil // effectively no embedded text
		},
		images: func([]byte) ([]image.Image, error) {
			return []image.Image{image.NewRGBA(image.Rect(0, 0, 4, 4))}, nil
		},
	}
	ocr := &stubOCR{
		fromPath: func(string) (string, error) {
			return "SCANNED PAGE CONTENT", nil
		},
	}
	svc := newTestExtractService(ocr, pdf)
	fh := makeFileHeader(t, "scan.pdf", "application/pdf", "%PDF-1.4 fake")

	assert.Equal(t, "SCANNED PAGE CONTENT", svc.ExtractFile(fh))
}

func TestExtractFileFailureDegradesToEmptyString(t *testing.T) {
	pdf := &stubPDF{
		text: func([]byte) (string, error) {
			return "", errors.New("corrupt document")
		},
		images: func([]byte) ([]image.Image, error) {
			return nil, errors.New("corrupt document")
		},
	}
	svc := newTestExtractService(&stubOCR{}, pdf)
	fh := makeFileHeader(t, "broken.pdf", "application/pdf", "junk")

	assert.Equal(t, "", svc.ExtractFile(fh))
}
