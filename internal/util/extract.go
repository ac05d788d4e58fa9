package util

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/gen2brain/go-fitz"
)

// minTextLayerChars is the text-layer size below which a PDF is treated as
// scanned and sent through OCR.
const minTextLayerChars = 100

var ErrNoTextExtracted = errors.New("no text extracted from PDF")

// ExtractPDFText reads the PDF text layer page by page and falls back to
// tesseract OCR when the layer is missing or too short.
func ExtractPDFText(ctx context.Context, data []byte, log *logger.Logger) (string, error) {
	if log == nil {
		log = logger.Nop()
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			log.Warn("pdf text layer unreadable", "page", n+1, "error", err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(b.String())
	if len([]rune(result)) >= minTextLayerChars {
		log.Debug("pdf text layer extracted", "pages", doc.NumPage(), "chars", len(result))
		return result, nil
	}

	log.Info("pdf text layer too short, running OCR", "chars", len(result))
	ocr, err := ocrDocument(ctx, doc, log)
	if err != nil {
		if result != "" {
			return result, nil
		}
		return "", err
	}
	return ocr, nil
}

func ocrDocument(ctx context.Context, doc *fitz.Document, log *logger.Logger) (string, error) {
	if err := checkTesseract(ctx); err != nil {
		return "", err
	}

	var b strings.Builder
	var lastErr error
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to render image: %w", n+1, err)
			log.Warn("ocr page skipped", "page", n+1, "error", err)
			continue
		}

		text, err := ocrImage(ctx, img)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			log.Warn("ocr page skipped", "page", n+1, "error", err)
			continue
		}
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(b.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("%w: %v", ErrNoTextExtracted, lastErr)
		}
		return "", ErrNoTextExtracted
	}
	return result, nil
}

func ocrImage(ctx context.Context, img image.Image) (string, error) {
	tmp, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	out, err := exec.CommandContext(ctx, "tesseract", tmp.Name(), "stdout", "-l", "eng").Output()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract(ctx context.Context) error {
	if out, err := exec.CommandContext(ctx, "tesseract", "-v").CombinedOutput(); err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}
