package extract

import "errors"

var (
	// ErrExtraction marks a failed subtitle stream extraction.
	ErrExtraction = errors.New("extraction failed")
	// ErrConversion marks a failed subtitle format conversion.
	ErrConversion = errors.New("conversion failed")
	// ErrOCR marks a failed OCR pass over a bitmap subtitle.
	ErrOCR = errors.New("ocr failed")
	// ErrOCRUnavailable reports that a bitmap track needs OCR but no OCR
	// tool is configured.
	ErrOCRUnavailable = errors.New("ocr tool unavailable")
)
