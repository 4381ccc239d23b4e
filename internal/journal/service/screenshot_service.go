package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-trade-journal/internal/journal/repository"
	"go-trade-journal/pkg/common"
	"go-trade-journal/pkg/logger"
	"go-trade-journal/pkg/utils"
)

var allowedScreenshotExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ScreenshotService stores chart screenshots for the before/after phases of
// a trade and keeps the filesystem in sync with the trade record.
type ScreenshotService interface {
	Attach(ctx context.Context, tradeID uint, phase string, file *multipart.FileHeader) (string, error)
	Remove(filenames ...string)
}

// NewScreenshotService creates a screenshot service writing into dir.
func NewScreenshotService(tradeRepo repository.TradeRepository, dir string, maxSizeBytes int64, logger *logger.Logger) ScreenshotService {
	return &screenshotService{
		tradeRepo:    tradeRepo,
		dir:          dir,
		maxSizeBytes: maxSizeBytes,
		logger:       logger,
	}
}

type screenshotService struct {
	tradeRepo    repository.TradeRepository
	dir          string
	maxSizeBytes int64
	logger       *logger.Logger
}

// Attach validates and stores an uploaded screenshot, replaces any previous
// file for the same phase, and returns the stored filename.
func (s *screenshotService) Attach(ctx context.Context, tradeID uint, phase string, file *multipart.FileHeader) (string, error) {
	verr := newValidationError()

	if phase != common.ScreenshotPhaseBefore && phase != common.ScreenshotPhaseAfter {
		verr.add("phase", "phase must be before or after")
	}
	if file == nil {
		verr.add("file", "a screenshot file is required")
		return "", verr
	}
	if file.Size > s.maxSizeBytes {
		verr.add("file", fmt.Sprintf("screenshot exceeds the %d byte limit", s.maxSizeBytes))
	}
	ext := strings.ToLower(filepath.Ext(utils.SanitizeFilename(file.Filename)))
	if !allowedScreenshotExts[ext] {
		verr.add("file", "screenshot must be a png, jpg, jpeg, or webp image")
	}
	if err := verr.orNil(); err != nil {
		return "", err
	}

	trade, err := s.tradeRepo.FindByID(ctx, tradeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTradeNotFound
		}
		return "", err
	}

	name := fmt.Sprintf("%s_%s_%s%s", time.Now().UTC().Format("20060102150405"), phase, uuid.NewString(), ext)
	if err := s.write(file, filepath.Join(s.dir, name)); err != nil {
		s.logger.Error("Failed to store screenshot", logger.ErrorField(err), logger.Field("trade_id", tradeID))
		return "", err
	}

	previous := ""
	if phase == common.ScreenshotPhaseBefore {
		previous = trade.ScreenshotBefore
		trade.ScreenshotBefore = name
	} else {
		previous = trade.ScreenshotAfter
		trade.ScreenshotAfter = name
	}

	if err := s.tradeRepo.Update(ctx, trade); err != nil {
		s.Remove(name)
		return "", err
	}
	s.Remove(previous)

	s.logger.Info("Screenshot attached",
		logger.Field("trade_id", tradeID),
		logger.Field("phase", phase),
		logger.Field("filename", name))
	return name, nil
}

// Remove deletes screenshot files from disk, ignoring blanks and files that
// are already gone.
func (s *screenshotService) Remove(filenames ...string) {
	for _, name := range filenames {
		if name == "" {
			continue
		}
		path := filepath.Join(s.dir, filepath.Base(name))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove screenshot file", logger.ErrorField(err), logger.Field("filename", name))
		}
	}
}

func (s *screenshotService) write(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
