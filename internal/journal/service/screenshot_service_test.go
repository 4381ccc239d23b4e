package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestAttachScreenshot(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created, err := env.trades.CreateTrade(context.Background(), validCreateRequest())
	require.NoError(t, err)

	file := multipartFile(t, "setup.png", []byte("not really a png"))
	name, err := env.screenshots.Attach(context.Background(), created.ID, "before", file)
	require.NoError(t, err)
	assert.Contains(t, name, "_before_")
	assert.Equal(t, ".png", filepath.Ext(name))

	_, err = os.Stat(filepath.Join(env.uploadsDir, name))
	require.NoError(t, err)

	trade, err := env.trades.GetTrade(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, name, trade.ScreenshotBefore)
}

func TestAttachReplacesPreviousFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created, err := env.trades.CreateTrade(context.Background(), validCreateRequest())
	require.NoError(t, err)

	first, err := env.screenshots.Attach(context.Background(), created.ID, "after", multipartFile(t, "a.png", []byte("one")))
	require.NoError(t, err)
	second, err := env.screenshots.Attach(context.Background(), created.ID, "after", multipartFile(t, "b.png", []byte("two")))
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = os.Stat(filepath.Join(env.uploadsDir, first))
	assert.True(t, os.IsNotExist(err), "previous file should be removed")
	_, err = os.Stat(filepath.Join(env.uploadsDir, second))
	assert.NoError(t, err)
}

func TestAttachValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created, err := env.trades.CreateTrade(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = env.screenshots.Attach(context.Background(), created.ID, "during", multipartFile(t, "a.png", []byte("x")))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "phase")

	_, err = env.screenshots.Attach(context.Background(), created.ID, "before", multipartFile(t, "a.exe", []byte("x")))
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "file")
}

func TestAttachUnknownTrade(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.screenshots.Attach(context.Background(), 404, "before", multipartFile(t, "a.png", []byte("x")))
	assert.ErrorIs(t, err, ErrTradeNotFound)
}

func TestDeleteTradeRemovesScreenshotFiles(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	created, err := env.trades.CreateTrade(context.Background(), validCreateRequest())
	require.NoError(t, err)

	name, err := env.screenshots.Attach(context.Background(), created.ID, "before", multipartFile(t, "a.png", []byte("x")))
	require.NoError(t, err)

	require.NoError(t, env.trades.DeleteTrade(context.Background(), created.ID))

	_, err = os.Stat(filepath.Join(env.uploadsDir, name))
	assert.True(t, os.IsNotExist(err))
}
