package service

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mygage/credit-report-service/dto"

	"go.uber.org/zap"
)

// A PDF whose embedded text is shorter than this is treated as scanned
// and routed through image extraction + OCR instead.
const scannedPDFTextThreshold = 20

// OCRClient recognizes text in document images.
type OCRClient interface {
	ExtractTextFromFile(fileHeader *multipart.FileHeader) (string, error)
	ExtractTextFromPath(filePath string) (string, error)
}

// ExtractService turns uploaded files into per-section text blobs.
type ExtractService struct {
	ocr    OCRClient
	pdf    PDFProcessor
	logger *zap.Logger
}

func NewExtractService(ocr OCRClient, pdf PDFProcessor, logger *zap.Logger) *ExtractService {
	return &ExtractService{
		ocr:    ocr,
		pdf:    pdf,
		logger: logger,
	}
}

// ExtractionFailedPlaceholder marks a section whose files all failed to
// yield text. Distinguishable downstream from "no files uploaded".
func ExtractionFailedPlaceholder(key dto.SectionKey) string {
	return fmt.Sprintf("[no text could be extracted from %s documents]", key)
}

// AggregateSections extracts every file of every section and joins the
// per-file texts with a blank line, in upload order. An empty section
// yields the empty string; a section whose extraction produced nothing
// but whitespace yields the failure placeholder instead.
func (s *ExtractService) AggregateSections(sections map[dto.SectionKey][]*multipart.FileHeader) map[dto.SectionKey]string {
	documents := make(map[dto.SectionKey]string, len(dto.SectionKeys()))

	for _, key := range dto.SectionKeys() {
		files := sections[key]
		if len(files) == 0 {
			documents[key] = ""
			continue
		}

		// Per-file fan-out; each goroutine writes its own slot so the
		// join stays in upload order regardless of completion order.
		texts := make([]string, len(files))
		var wg sync.WaitGroup
		for i, fileHeader := range files {
			wg.Add(1)
			go func(slot int, fh *multipart.FileHeader) {
				defer wg.Done()
				texts[slot] = s.ExtractFile(fh)
			}(i, fileHeader)
		}
		wg.Wait()

		joined := strings.Join(texts, "\n\n")
		if strings.TrimSpace(joined) == "" {
			s.logger.Warn("all files in section failed extraction",
				zap.String("section", string(key)),
				zap.Int("files", len(files)))
			documents[key] = ExtractionFailedPlaceholder(key)
			continue
		}
		documents[key] = joined
	}

	return documents
}

// ExtractFile converts one uploaded file into plain text. Extraction
// failure degrades to the empty string; it never aborts sibling files.
func (s *ExtractService) ExtractFile(fileHeader *multipart.FileHeader) string {
	kind := detectFileKind(fileHeader)

	var text string
	var err error
	switch kind {
	case dto.FileKindImage:
		text, err = s.extractImage(fileHeader)
	case dto.FileKindPDF:
		text, err = s.extractPDF(fileHeader)
	default:
		text, err = readRawText(fileHeader)
	}

	if err != nil {
		s.logger.Warn("file extraction failed",
			zap.String("filename", fileHeader.Filename),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return ""
	}
	return text
}

func (s *ExtractService) extractImage(fileHeader *multipart.FileHeader) (string, error) {
	text, err := s.ocr.ExtractTextFromFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("image OCR failed: %w", err)
	}

	// E-statement images sometimes carry a QR verification payload the
	// OCR pass cannot read. Absence of a QR code is the normal case.
	if payload, qrErr := s.decodeImageQR(fileHeader); qrErr == nil && payload != "" {
		if strings.TrimSpace(text) == "" {
			text = payload
		} else {
			text = strings.TrimRight(text, "\n") + "\n" + payload
		}
	}

	return text, nil
}

func (s *ExtractService) decodeImageQR(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", err
	}

	return decodeQRPayload(img)
}

func (s *ExtractService) extractPDF(fileHeader *multipart.FileHeader) (string, error) {
	data, err := readFileBytes(fileHeader)
	if err != nil {
		return "", err
	}

	text, err := s.pdf.ExtractText(data)
	if err != nil {
		s.logger.Warn("pdf text extraction failed, trying image OCR",
			zap.String("filename", fileHeader.Filename), zap.Error(err))
		text = ""
	}

	if len(strings.TrimSpace(text)) >= scannedPDFTextThreshold {
		return text, nil
	}

	// Scanned PDF: OCR each embedded page image, page order preserved.
	images, imgErr := s.pdf.ExtractImages(data)
	if imgErr != nil || len(images) == 0 {
		if imgErr != nil {
			s.logger.Warn("pdf image extraction failed",
				zap.String("filename", fileHeader.Filename), zap.Error(imgErr))
		}
		return text, err
	}

	var pages []string
	for _, img := range images {
		tempImg, saveErr := saveImageToTempFile(img)
		if saveErr != nil {
			continue
		}

		pageText, ocrErr := s.ocr.ExtractTextFromPath(tempImg)
		os.Remove(tempImg)
		if ocrErr != nil {
			s.logger.Warn("ocr failed for pdf page",
				zap.String("filename", fileHeader.Filename), zap.Error(ocrErr))
			continue
		}
		pages = append(pages, pageText)
	}

	if len(pages) > 0 {
		return strings.Join(pages, "\n"), nil
	}
	return text, err
}

func detectFileKind(fileHeader *multipart.FileHeader) dto.FileKind {
	contentType := fileHeader.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return dto.FileKindImage
	case contentType == "application/pdf":
		return dto.FileKindPDF
	}

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif":
		return dto.FileKindImage
	case ".pdf":
		return dto.FileKindPDF
	}
	return dto.FileKindOther
}

func readRawText(fileHeader *multipart.FileHeader) (string, error) {
	data, err := readFileBytes(fileHeader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readFileBytes(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
