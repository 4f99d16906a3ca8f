package lawsite

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 82
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, shrinks it to maxImageWidth when
// wider, and re-encodes it as JPEG.
func processImage(src io.Reader, originalName string, now time.Time) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxImageWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	base := Slugify(strings.TrimSuffix(originalName, filepath.Ext(originalName)))
	if base == "" {
		base = "image"
	}
	return Image{
		Filename:     base + ".jpg",
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   now.UTC().Format(time.RFC3339Nano),
	}, buf.Bytes(), nil
}

// uniqueFilename appends a counter until the name is free on disk and in the store.
func (a *App) uniqueFilename(ctx context.Context, filename string) (string, error) {
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	base := strings.TrimSuffix(filename, ".jpg")
	candidate := filename
	for counter := 2; ; counter++ {
		_, statErr := os.Stat(filepath.Join(dir, candidate))
		taken, err := a.Store.ImageExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if statErr != nil && !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusForbidden, fail(FailureUnauthorized, MsgNotAuthorized))
	}
	ctx := c.Request().Context()

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail(FailureValidation, "No image file provided."))
	}
	if file.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, fail(FailureValidation, "File too large (max "+humanize.IBytes(maxUploadSize)+")."))
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename, a.now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail(FailureValidation, "Invalid image."))
	}
	if img.Filename, err = a.uniqueFilename(ctx, img.Filename); err != nil {
		return err
	}

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	path := filepath.Join(dir, img.Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := a.Store.SaveImage(ctx, img); err != nil {
		// No row points at the file, so it must not outlive the failure.
		if rmErr := os.Remove(path); rmErr != nil {
			a.Log.Warn().Err(rmErr).Str("filename", img.Filename).Msg("orphaned image not removed")
		}
		return err
	}
	a.Log.Info().Str("filename", img.Filename).Str("size", humanize.Bytes(uint64(img.Size))).Msg("image uploaded")

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Image uploaded successfully.",
		"url":     img.URL(),
		"image":   img,
	})
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusForbidden, fail(FailureUnauthorized, MsgNotAuthorized))
	}
	filename := filepath.Base(c.Param("filename"))
	if filename == "" || filename == "." || filename == ".." || filename == "/" {
		return c.JSON(http.StatusBadRequest, fail(FailureValidation, "Filename required."))
	}

	// A file already gone from disk still has its row removed.
	_ = os.Remove(filepath.Join(a.staticDir, uploadsSubdir, filename))
	if err := a.Store.DeleteImage(c.Request().Context(), filename); err != nil {
		return err
	}
	return a.renderImageList(c)
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return a.renderImageList(c)
}

func (a *App) renderImageList(c echo.Context) error {
	images, err := a.Store.ListImages(c.Request().Context())
	if err != nil {
		return err
	}
	return renderOr(c, http.StatusOK, a.Views.adminImages(images, CsrfToken(c)), images)
}
